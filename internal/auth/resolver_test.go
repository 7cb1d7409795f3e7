package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamcity-go/teamcity-client/internal/auth"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

func TestResolvePrecedence(t *testing.T) {
	tests := []struct {
		name        string
		config      *teamcity.Config
		wantMethod  teamcity.AuthMethod
		wantBaseURL string
	}{
		{
			name: "token wins over everything",
			config: &teamcity.Config{
				ServerURL: "https://ci.example.com",
				Token:     "abc",
				Username:  "alice",
				Password:  "secret",
				Guest:     true,
			},
			wantMethod:  teamcity.AuthToken,
			wantBaseURL: "https://ci.example.com/app/rest",
		},
		{
			name: "username and password without token",
			config: &teamcity.Config{
				ServerURL: "https://ci.example.com",
				Username:  "alice",
				Password:  "secret",
				Guest:     true,
			},
			wantMethod:  teamcity.AuthUserPassword,
			wantBaseURL: "https://ci.example.com/httpAuth/app/rest",
		},
		{
			name: "username without password falls through to guest",
			config: &teamcity.Config{
				ServerURL: "https://ci.example.com",
				Username:  "alice",
				Guest:     true,
			},
			wantMethod:  teamcity.AuthGuest,
			wantBaseURL: "https://ci.example.com/guestAuth/app/rest",
		},
		{
			name: "guest only",
			config: &teamcity.Config{
				ServerURL: "https://ci.example.com",
				Guest:     true,
			},
			wantMethod:  teamcity.AuthGuest,
			wantBaseURL: "https://ci.example.com/guestAuth/app/rest",
		},
		{
			name: "no credentials assumes browser session",
			config: &teamcity.Config{
				ServerURL: "https://ci.example.com",
			},
			wantMethod:  teamcity.AuthSession,
			wantBaseURL: "https://ci.example.com/app/rest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := auth.Resolve(tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, strategy.Method)
			assert.Equal(t, tt.wantBaseURL, strategy.BaseURL)
			assert.Equal(t, "application/json", strategy.Headers["Accept"])
		})
	}
}

func TestResolveTokenHeaders(t *testing.T) {
	strategy, err := auth.Resolve(&teamcity.Config{
		ServerURL: "https://ci.example.com",
		Token:     "abc",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"Accept":        "application/json",
		"Authorization": "Bearer abc",
	}, strategy.Headers)
}

func TestResolveBasicAuthCredentials(t *testing.T) {
	strategy, err := auth.Resolve(&teamcity.Config{
		ServerURL: "https://ci.example.com",
		Username:  "alice",
		Password:  "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", strategy.Username)
	assert.Equal(t, "secret", strategy.Password)
	// Basic credentials travel out of band, not as headers.
	assert.NotContains(t, strategy.Headers, "Authorization")
}

func TestResolveMissingServer(t *testing.T) {
	_, err := auth.Resolve(&teamcity.Config{Token: "abc"})
	require.ErrorIs(t, err, teamcity.ErrServerRequired)
}

func TestAllowsWrites(t *testing.T) {
	writable := []*teamcity.Config{
		{ServerURL: "https://ci.example.com", Token: "abc"},
		{ServerURL: "https://ci.example.com", Username: "alice", Password: "secret"},
		{ServerURL: "https://ci.example.com", Guest: true},
	}

	for _, config := range writable {
		strategy, err := auth.Resolve(config)
		require.NoError(t, err)
		assert.True(t, strategy.AllowsWrites())
	}

	session, err := auth.Resolve(&teamcity.Config{ServerURL: "https://ci.example.com"})
	require.NoError(t, err)
	assert.False(t, session.AllowsWrites())
}

func TestNormalizeServerURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://x", "http://x"},
		{"http://x/", "http://x"},
		{"https://ci.example.com", "https://ci.example.com"},
		{"x.com", "https://x.com"},
		{"x.com/", "https://x.com"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, auth.NormalizeServerURL(tt.in), "input %q", tt.in)
		// Idempotent: a second pass changes nothing.
		assert.Equal(t, tt.want, auth.NormalizeServerURL(auth.NormalizeServerURL(tt.in)), "input %q", tt.in)
	}
}
