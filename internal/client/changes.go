package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/teamcity-go/teamcity-client/internal/constants"
	internalhttp "github.com/teamcity-go/teamcity-client/internal/http"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// ChangesClient implements the teamcity.ChangesClient interface.
type ChangesClient struct {
	httpClient *internalhttp.Client
}

// NewChangesClient creates a new ChangesClient.
func NewChangesClient(httpClient *internalhttp.Client) *ChangesClient {
	return &ChangesClient{
		httpClient: httpClient,
	}
}

// List implements teamcity.ChangesClient.List.
func (c *ChangesClient) List(ctx context.Context, buildTypeID string, count int) ([]teamcity.Change, error) {
	return c.list(ctx, buildTypeID, count, false)
}

// Pending implements teamcity.ChangesClient.Pending.
func (c *ChangesClient) Pending(ctx context.Context, buildTypeID string, count int) ([]teamcity.Change, error) {
	return c.list(ctx, buildTypeID, count, true)
}

func (c *ChangesClient) list(ctx context.Context, buildTypeID string, count int, pending bool) ([]teamcity.Change, error) {
	locator := teamcity.NewLocator().
		BuildType(buildTypeID).
		AddInt("count", countOrDefault(count, constants.DefaultChangeCount))

	if pending {
		locator.Add("pending", "true")
	}

	query := url.Values{}
	query.Set("locator", locator.String())

	resp, err := c.httpClient.Get(ctx, "changes", query)
	if err != nil {
		return nil, fmt.Errorf("listing changes: %w", err)
	}

	var list teamcity.ChangeList

	err = resp.JSON(&list)
	if err != nil {
		return nil, fmt.Errorf("parsing changes response: %w", err)
	}

	return list.Changes, nil
}
