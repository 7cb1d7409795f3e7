package client

import (
	"context"
	"fmt"
	"strings"

	internalhttp "github.com/teamcity-go/teamcity-client/internal/http"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// ArtifactsClient implements the teamcity.ArtifactsClient interface.
type ArtifactsClient struct {
	httpClient *internalhttp.Client
}

// NewArtifactsClient creates a new ArtifactsClient.
func NewArtifactsClient(httpClient *internalhttp.Client) *ArtifactsClient {
	return &ArtifactsClient{
		httpClient: httpClient,
	}
}

// List implements teamcity.ArtifactsClient.List.
func (c *ArtifactsClient) List(ctx context.Context, buildID int64, path string) ([]teamcity.File, error) {
	endpoint := fmt.Sprintf("builds/id:%d/artifacts/children", buildID)
	if path != "" {
		endpoint += "/" + strings.TrimPrefix(path, "/")
	}

	resp, err := c.httpClient.Get(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}

	var list teamcity.FileList

	err = resp.JSON(&list)
	if err != nil {
		return nil, fmt.Errorf("parsing artifacts response: %w", err)
	}

	return list.Files, nil
}

// Download implements teamcity.ArtifactsClient.Download.
func (c *ArtifactsClient) Download(ctx context.Context, buildID int64, path string) ([]byte, error) {
	endpoint := fmt.Sprintf("builds/id:%d/artifacts/content/%s", buildID, strings.TrimPrefix(path, "/"))

	content, err := c.httpClient.GetFile(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("downloading artifact: %w", err)
	}

	return content, nil
}
