// Package auth selects the authentication strategy a client uses for its
// whole lifetime and derives the REST base URL and default headers for it.
package auth

import (
	"strings"

	"github.com/teamcity-go/teamcity-client/internal/constants"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// Strategy is the resolved authentication strategy. It is immutable after
// Resolve; per-request header maps are built by merging copies of Headers.
type Strategy struct {
	Method  teamcity.AuthMethod
	BaseURL string
	Headers map[string]string

	// Basic-auth credentials, set only for AuthUserPassword. They are
	// attached per dispatch rather than embedded in Headers.
	Username string
	Password string
}

// AllowsWrites reports whether POST operations are permitted under this
// strategy. Only the session strategy forbids them.
func (s *Strategy) AllowsWrites() bool {
	return s.Method != teamcity.AuthSession
}

// Resolve picks exactly one strategy from the config by fixed precedence:
// token, then username+password, then guest, then session. Fields after
// the first match are ignored. The config's ServerURL must already be
// normalized (see NormalizeServerURL).
func Resolve(config *teamcity.Config) (*Strategy, error) {
	if config.ServerURL == "" {
		return nil, teamcity.ErrServerRequired
	}

	headers := map[string]string{"Accept": "application/json"}

	switch {
	case config.Token != "":
		headers["Authorization"] = "Bearer " + config.Token

		return &Strategy{
			Method:  teamcity.AuthToken,
			BaseURL: config.ServerURL + constants.RESTPathToken,
			Headers: headers,
		}, nil

	case config.Username != "" && config.Password != "":
		return &Strategy{
			Method:   teamcity.AuthUserPassword,
			BaseURL:  config.ServerURL + constants.RESTPathBasicAuth,
			Headers:  headers,
			Username: config.Username,
			Password: config.Password,
		}, nil

	case config.Guest:
		return &Strategy{
			Method:  teamcity.AuthGuest,
			BaseURL: config.ServerURL + constants.RESTPathGuest,
			Headers: headers,
		}, nil

	default:
		return &Strategy{
			Method:  teamcity.AuthSession,
			BaseURL: config.ServerURL + constants.RESTPathToken,
			Headers: headers,
		}, nil
	}
}

// NormalizeServerURL strips one trailing slash and defaults the scheme to
// https. Normalization is idempotent.
func NormalizeServerURL(server string) string {
	server = strings.TrimSuffix(server, "/")
	if server != "" && !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "https://" + server
	}

	return server
}
