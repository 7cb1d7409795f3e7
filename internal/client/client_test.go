package client_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teamcity-go/teamcity-client/internal/auth"
	"github.com/teamcity-go/teamcity-client/internal/client"
	internalhttp "github.com/teamcity-go/teamcity-client/internal/http"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

func TestClientWiring(t *testing.T) {
	tc := client.NewTestClient("http://ci.example.com")

	assert.NotNil(t, tc.Builds())
	assert.NotNil(t, tc.Queue())
	assert.NotNil(t, tc.Artifacts())
	assert.NotNil(t, tc.Changes())
	assert.NotNil(t, tc.Projects())
	assert.NotNil(t, tc.BuildTypes())
	assert.NotNil(t, tc.Users())
	assert.NotNil(t, tc.Agents())
	assert.NotNil(t, tc.Server())
}

func TestClientAuthMethod(t *testing.T) {
	strategy := &auth.Strategy{
		Method:  teamcity.AuthGuest,
		BaseURL: "http://ci.example.com/guestAuth/app/rest",
	}

	tc := client.New(strategy, internalhttp.NewClient(strategy))
	assert.Equal(t, teamcity.AuthGuest, tc.AuthMethod())
}
