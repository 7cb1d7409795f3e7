package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/teamcity-go/teamcity-client/internal/constants"
	internalhttp "github.com/teamcity-go/teamcity-client/internal/http"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// BuildTypesClient implements the teamcity.BuildTypesClient interface.
type BuildTypesClient struct {
	httpClient *internalhttp.Client
}

// NewBuildTypesClient creates a new BuildTypesClient.
func NewBuildTypesClient(httpClient *internalhttp.Client) *BuildTypesClient {
	return &BuildTypesClient{
		httpClient: httpClient,
	}
}

// List implements teamcity.BuildTypesClient.List.
func (c *BuildTypesClient) List(ctx context.Context, count int) ([]teamcity.BuildType, error) {
	locator := teamcity.NewLocator().
		AddInt("count", countOrDefault(count, constants.DefaultBuildTypeCount))

	query := url.Values{}
	query.Set("locator", locator.String())

	resp, err := c.httpClient.Get(ctx, "buildTypes", query)
	if err != nil {
		return nil, fmt.Errorf("listing build types: %w", err)
	}

	var list teamcity.BuildTypeList

	err = resp.JSON(&list)
	if err != nil {
		return nil, fmt.Errorf("parsing build types response: %w", err)
	}

	return list.BuildTypes, nil
}

// Get implements teamcity.BuildTypesClient.Get.
func (c *BuildTypesClient) Get(ctx context.Context, id string) (*teamcity.BuildType, error) {
	resp, err := c.httpClient.Get(ctx, "buildTypes/id:"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting build type: %w", err)
	}

	var buildType teamcity.BuildType

	err = resp.JSON(&buildType)
	if err != nil {
		return nil, fmt.Errorf("parsing build type response: %w", err)
	}

	return &buildType, nil
}
