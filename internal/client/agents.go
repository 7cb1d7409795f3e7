package client

import (
	"context"
	"fmt"

	internalhttp "github.com/teamcity-go/teamcity-client/internal/http"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// AgentsClient implements the teamcity.AgentsClient interface.
type AgentsClient struct {
	httpClient *internalhttp.Client
}

// NewAgentsClient creates a new AgentsClient.
func NewAgentsClient(httpClient *internalhttp.Client) *AgentsClient {
	return &AgentsClient{
		httpClient: httpClient,
	}
}

// List implements teamcity.AgentsClient.List.
func (c *AgentsClient) List(ctx context.Context) ([]teamcity.Agent, error) {
	resp, err := c.httpClient.Get(ctx, "agents", nil)
	if err != nil {
		return nil, fmt.Errorf("listing agents: %w", err)
	}

	var list teamcity.AgentList

	err = resp.JSON(&list)
	if err != nil {
		return nil, fmt.Errorf("parsing agents response: %w", err)
	}

	return list.Agents, nil
}

// Get implements teamcity.AgentsClient.Get.
func (c *AgentsClient) Get(ctx context.Context, id int64) (*teamcity.Agent, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("agents/id:%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting agent: %w", err)
	}

	var agent teamcity.Agent

	err = resp.JSON(&agent)
	if err != nil {
		return nil, fmt.Errorf("parsing agent response: %w", err)
	}

	return &agent, nil
}
