package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/teamcity-go/teamcity-client/internal/constants"
	internalhttp "github.com/teamcity-go/teamcity-client/internal/http"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// QueueClient implements the teamcity.QueueClient interface.
type QueueClient struct {
	httpClient *internalhttp.Client
	builds     *BuildsClient
}

// NewQueueClient creates a new QueueClient. The builds client serves detail
// expansion of queued entries.
func NewQueueClient(httpClient *internalhttp.Client, builds *BuildsClient) *QueueClient {
	return &QueueClient{
		httpClient: httpClient,
		builds:     builds,
	}
}

// List implements teamcity.QueueClient.List.
func (c *QueueClient) List(ctx context.Context, opts *teamcity.BuildListOptions) ([]teamcity.Build, error) {
	opts = normalizeOptions(opts)

	locator := teamcity.NewLocator().
		AddInt("count", countOrDefault(opts.Count, constants.DefaultQueueCount)).
		BuildType(opts.BuildTypeID)

	query := url.Values{}
	query.Set("locator", locator.String())

	resp, err := c.httpClient.Get(ctx, "buildQueue", query)
	if err != nil {
		return nil, fmt.Errorf("listing queued builds: %w", err)
	}

	var list teamcity.BuildList

	err = resp.JSON(&list)
	if err != nil {
		return nil, fmt.Errorf("parsing queued builds response: %w", err)
	}

	if !opts.Details {
		return list.Builds, nil
	}

	return c.builds.expand(ctx, list.Builds)
}

// Trigger implements teamcity.QueueClient.Trigger.
func (c *QueueClient) Trigger(ctx context.Context, request *teamcity.TriggerRequest) (*teamcity.Build, error) {
	resp, err := c.httpClient.Post(ctx, "buildQueue", request)
	if err != nil {
		return nil, fmt.Errorf("triggering build: %w", err)
	}

	var build teamcity.Build

	err = resp.JSON(&build)
	if err != nil {
		return nil, fmt.Errorf("parsing trigger response: %w", err)
	}

	return &build, nil
}

// Cancel implements teamcity.QueueClient.Cancel.
func (c *QueueClient) Cancel(ctx context.Context, id int64, comment string) (*teamcity.Build, error) {
	request := &teamcity.CancelRequest{Comment: comment}

	resp, err := c.httpClient.Post(ctx, fmt.Sprintf("buildQueue/id:%d", id), request)
	if err != nil {
		return nil, fmt.Errorf("canceling queued build: %w", err)
	}

	var build teamcity.Build

	err = resp.JSON(&build)
	if err != nil {
		return nil, fmt.Errorf("parsing queue cancel response: %w", err)
	}

	return &build, nil
}
