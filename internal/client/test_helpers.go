package client

import (
	"github.com/teamcity-go/teamcity-client/internal/auth"
	internalhttp "github.com/teamcity-go/teamcity-client/internal/http"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// NewTestClient creates a client for tests: token strategy against the
// given base URL, single dispatch per request so failures stay cheap.
func NewTestClient(baseURL string) *Client {
	strategy := &auth.Strategy{
		Method:  teamcity.AuthToken,
		BaseURL: baseURL + "/app/rest",
		Headers: map[string]string{
			"Accept":        "application/json",
			"Authorization": "Bearer test-token",
		},
	}

	return New(strategy, internalhttp.NewClient(strategy, internalhttp.WithRetryConfig(1)))
}
