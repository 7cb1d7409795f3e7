package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamcity-go/teamcity-client/internal/client"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

func TestUsersCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/app/rest/users/current", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(teamcity.User{ID: 1, Username: "alice"})
	}))
	defer server.Close()

	user, err := client.NewTestClient(server.URL).Users().Current(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestUsersGet(t *testing.T) {
	t.Run("by username", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/app/rest/users/id:bob", request.URL.Path)

			_ = json.NewEncoder(writer).Encode(teamcity.User{ID: 2, Username: "bob"})
		}))
		defer server.Close()

		user, err := client.NewTestClient(server.URL).Users().Get(t.Context(), "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(2), user.ID)
	})

	t.Run("empty resolves to current", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/app/rest/users/current", request.URL.Path)

			_ = json.NewEncoder(writer).Encode(teamcity.User{ID: 1, Username: "alice"})
		}))
		defer server.Close()

		user, err := client.NewTestClient(server.URL).Users().Get(t.Context(), "")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})
}

func TestUsersList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/app/rest/users", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(teamcity.UserList{
			Count: 2,
			Users: []teamcity.User{{Username: "alice"}, {Username: "bob"}},
		})
	}))
	defer server.Close()

	users, err := client.NewTestClient(server.URL).Users().List(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 2)
}
