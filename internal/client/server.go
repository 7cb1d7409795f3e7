package client

import (
	"context"
	"fmt"

	internalhttp "github.com/teamcity-go/teamcity-client/internal/http"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// ServerClient implements the teamcity.ServerClient interface.
type ServerClient struct {
	httpClient *internalhttp.Client
}

// NewServerClient creates a new ServerClient.
func NewServerClient(httpClient *internalhttp.Client) *ServerClient {
	return &ServerClient{
		httpClient: httpClient,
	}
}

// Info implements teamcity.ServerClient.Info.
func (c *ServerClient) Info(ctx context.Context) (*teamcity.ServerInfo, error) {
	resp, err := c.httpClient.Get(ctx, "server", nil)
	if err != nil {
		return nil, fmt.Errorf("getting server info: %w", err)
	}

	var info teamcity.ServerInfo

	err = resp.JSON(&info)
	if err != nil {
		return nil, fmt.Errorf("parsing server info response: %w", err)
	}

	return &info, nil
}
