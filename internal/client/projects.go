package client

import (
	"context"
	"fmt"

	internalhttp "github.com/teamcity-go/teamcity-client/internal/http"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// ProjectsClient implements the teamcity.ProjectsClient interface.
type ProjectsClient struct {
	httpClient *internalhttp.Client
}

// NewProjectsClient creates a new ProjectsClient.
func NewProjectsClient(httpClient *internalhttp.Client) *ProjectsClient {
	return &ProjectsClient{
		httpClient: httpClient,
	}
}

// List implements teamcity.ProjectsClient.List.
func (c *ProjectsClient) List(ctx context.Context) ([]teamcity.Project, error) {
	resp, err := c.httpClient.Get(ctx, "projects", nil)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	var list teamcity.ProjectList

	err = resp.JSON(&list)
	if err != nil {
		return nil, fmt.Errorf("parsing projects response: %w", err)
	}

	return list.Projects, nil
}

// Get implements teamcity.ProjectsClient.Get.
func (c *ProjectsClient) Get(ctx context.Context, id string) (*teamcity.Project, error) {
	resp, err := c.httpClient.Get(ctx, "projects/id:"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	var project teamcity.Project

	err = resp.JSON(&project)
	if err != nil {
		return nil, fmt.Errorf("parsing project response: %w", err)
	}

	return &project, nil
}

// BuildTypes implements teamcity.ProjectsClient.BuildTypes.
func (c *ProjectsClient) BuildTypes(ctx context.Context, projectID string, details bool) ([]teamcity.BuildType, error) {
	resp, err := c.httpClient.Get(ctx, "projects/id:"+projectID+"/buildTypes", nil)
	if err != nil {
		return nil, fmt.Errorf("listing project build types: %w", err)
	}

	var list teamcity.BuildTypeList

	err = resp.JSON(&list)
	if err != nil {
		return nil, fmt.Errorf("parsing project build types response: %w", err)
	}

	if !details {
		return list.BuildTypes, nil
	}

	buildTypes := make([]teamcity.BuildType, 0, len(list.BuildTypes))
	buildTypesClient := NewBuildTypesClient(c.httpClient)

	for _, summary := range list.BuildTypes {
		full, err := buildTypesClient.Get(ctx, summary.ID)
		if err != nil {
			return nil, fmt.Errorf("expanding build type %s: %w", summary.ID, err)
		}

		buildTypes = append(buildTypes, *full)
	}

	return buildTypes, nil
}
