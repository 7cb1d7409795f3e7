// Package tcclient provides the main entry point for creating TeamCity API
// clients.
package tcclient

import (
	"fmt"
	"os"

	"github.com/teamcity-go/teamcity-client/internal/auth"
	"github.com/teamcity-go/teamcity-client/internal/client"
	internalhttp "github.com/teamcity-go/teamcity-client/internal/http"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// Environment keys consulted for config fields left unset. Explicit config
// values always win over the lookup.
const (
	EnvServer   = "TEAMCITY_SERVER"
	EnvToken    = "TEAMCITY_TOKEN"
	EnvUser     = "TEAMCITY_USER"
	EnvPassword = "TEAMCITY_PASSWORD"
	EnvGuest    = "TEAMCITY_GUEST"
)

// New creates a new TeamCity API client.
//
// Unset config fields are filled from config.Lookup (os.Getenv unless
// substituted), the server address is normalized, and exactly one
// authentication strategy is resolved for the client's lifetime. The
// caller's config is not mutated.
func New(config *teamcity.Config) (teamcity.Client, error) {
	if config == nil {
		return nil, teamcity.ErrConfigRequired
	}

	cfg := *config

	lookup := cfg.Lookup
	if lookup == nil {
		lookup = os.Getenv
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = lookup(EnvServer)
	}

	if cfg.Token == "" {
		cfg.Token = lookup(EnvToken)
	}

	if cfg.Username == "" {
		cfg.Username = lookup(EnvUser)
	}

	if cfg.Password == "" {
		cfg.Password = lookup(EnvPassword)
	}

	if !cfg.Guest {
		cfg.Guest = isTruthy(lookup(EnvGuest))
	}

	if cfg.ServerURL == "" {
		return nil, teamcity.ErrServerRequired
	}

	cfg.ServerURL = auth.NormalizeServerURL(cfg.ServerURL)

	strategy, err := auth.Resolve(&cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving authentication: %w", err)
	}

	httpClient := internalhttp.NewClient(strategy, createHTTPClientOptions(&cfg)...)

	return client.New(strategy, httpClient), nil
}

// NewWithToken creates a client authenticating with a bearer token.
func NewWithToken(server, token string) (teamcity.Client, error) {
	return New(&teamcity.Config{
		ServerURL: server,
		Token:     token,
	})
}

// NewWithPassword creates a client authenticating with basic credentials.
func NewWithPassword(server, username, password string) (teamcity.Client, error) {
	return New(&teamcity.Config{
		ServerURL: server,
		Username:  username,
		Password:  password,
	})
}

// NewGuest creates a client using the server's guest login.
func NewGuest(server string) (teamcity.Client, error) {
	return New(&teamcity.Config{
		ServerURL: server,
		Guest:     true,
		// An empty lookup keeps ambient credentials from overriding the
		// explicit guest choice.
		Lookup: func(string) string { return "" },
	})
}

// createHTTPClientOptions builds executor options from config.
func createHTTPClientOptions(config *teamcity.Config) []internalhttp.Option {
	var opts []internalhttp.Option

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax))
	}

	if config.RequestTimeout > 0 {
		opts = append(opts, internalhttp.WithTimeout(config.RequestTimeout))
	}

	if config.HTTPClient != nil {
		opts = append(opts, internalhttp.WithHTTPClient(config.HTTPClient))
	}

	return opts
}

func isTruthy(value string) bool {
	switch value {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
