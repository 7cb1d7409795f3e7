package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/teamcity-go/teamcity-client/internal/constants"
	internalhttp "github.com/teamcity-go/teamcity-client/internal/http"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// dependenciesFields is the projection the server applies to dependency
// listings; it mirrors the fields the TeamCity UI requests for the build
// chain view.
const dependenciesFields = "count,build(id,number,branchName,defaultBranch,queuedDate,startDate," +
	"finishDate,history,composite,comment(text,timestamp,user(id,name,username)),statusText," +
	"status,state,failedToStart,personal,pinned,user(id,name,username),canceledInfo(" +
	"text,user(id,name,username)),agent(name,id,typeId,connected,pool(id,name))," +
	"buildType(id,paused,projectId,name),snapshot-dependencies(count,build(id))," +
	"waitReason,queuePosition,triggered(date,displayText,buildType(id,projectId,name)))"

// BuildsClient implements the teamcity.BuildsClient interface.
type BuildsClient struct {
	httpClient *internalhttp.Client
}

// NewBuildsClient creates a new BuildsClient.
func NewBuildsClient(httpClient *internalhttp.Client) *BuildsClient {
	return &BuildsClient{
		httpClient: httpClient,
	}
}

// List implements teamcity.BuildsClient.List.
func (c *BuildsClient) List(ctx context.Context, opts *teamcity.BuildListOptions) ([]teamcity.Build, error) {
	opts = normalizeOptions(opts)

	locator := teamcity.NewLocator().
		Add("defaultFilter", "false").
		AddInt("count", countOrDefault(opts.Count, constants.DefaultBuildCount)).
		BuildType(opts.BuildTypeID)

	return c.listBuilds(ctx, "builds", locator, opts.Details)
}

// ListByDate implements teamcity.BuildsClient.ListByDate.
func (c *BuildsClient) ListByDate(ctx context.Context, start, finish string, opts *teamcity.BuildListOptions) ([]teamcity.Build, error) {
	opts = normalizeOptions(opts)

	locator := teamcity.NewLocator().
		Add("defaultFilter", "false").
		AddInt("count", countOrDefault(opts.Count, constants.DefaultBuildCount)).
		BuildType(opts.BuildTypeID)

	if start != "" {
		locator.Add("startDate", start)
	}

	if finish != "" {
		locator.Add("finishDate", finish)
	}

	return c.listBuilds(ctx, "builds", locator, opts.Details)
}

// ListByLocator implements teamcity.BuildsClient.ListByLocator.
func (c *BuildsClient) ListByLocator(ctx context.Context, fragment string, opts *teamcity.BuildListOptions) ([]teamcity.Build, error) {
	opts = normalizeOptions(opts)

	locator := teamcity.NewLocator().
		Add("defaultFilter", "false").
		AddInt("count", countOrDefault(opts.Count, constants.DefaultBuildCount)).
		AddRaw(fragment).
		BuildType(opts.BuildTypeID)

	return c.listBuilds(ctx, "builds", locator, opts.Details)
}

// Get implements teamcity.BuildsClient.Get.
func (c *BuildsClient) Get(ctx context.Context, id int64) (*teamcity.Build, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("builds/id:%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting build: %w", err)
	}

	var build teamcity.Build

	err = resp.JSON(&build)
	if err != nil {
		return nil, fmt.Errorf("parsing build response: %w", err)
	}

	return &build, nil
}

// Latest implements teamcity.BuildsClient.Latest.
func (c *BuildsClient) Latest(ctx context.Context, buildTypeID string, successOnly bool) (*teamcity.Build, error) {
	locator := teamcity.NewLocator().
		BuildType(buildTypeID).
		AddInt("count", 1)

	if successOnly {
		locator.Add("status", "SUCCESS")
	}

	builds, err := c.listBuilds(ctx, "builds", locator, false)
	if err != nil {
		return nil, err
	}

	if len(builds) == 0 {
		return nil, fmt.Errorf("latest build of %s: %w", buildTypeID, teamcity.ErrNoBuilds)
	}

	return c.Get(ctx, builds[0].ID)
}

// Dependencies implements teamcity.BuildsClient.Dependencies.
func (c *BuildsClient) Dependencies(ctx context.Context, id int64, count int) ([]teamcity.Build, error) {
	locator := teamcity.NewLocator().
		Add("defaultFilter", "false").
		AddRaw(fmt.Sprintf("snapshotDependency(to:(id:%d))", id)).
		AddInt("count", countOrDefault(count, constants.DefaultBuildCount)).
		AddRaw("or:(personal:false,and:(personal:true,user:current))")

	query := url.Values{}
	query.Set("locator", locator.String())
	query.Set("fields", dependenciesFields)

	resp, err := c.httpClient.Get(ctx, "builds", query)
	if err != nil {
		return nil, fmt.Errorf("listing build dependencies: %w", err)
	}

	var list teamcity.BuildList

	err = resp.JSON(&list)
	if err != nil {
		return nil, fmt.Errorf("parsing build dependencies response: %w", err)
	}

	return list.Builds, nil
}

// ActualParameters implements teamcity.BuildsClient.ActualParameters.
func (c *BuildsClient) ActualParameters(ctx context.Context, id int64) (*teamcity.Properties, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("builds/id:%d/resulting-properties", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting build parameters: %w", err)
	}

	var props teamcity.Properties

	err = resp.JSON(&props)
	if err != nil {
		return nil, fmt.Errorf("parsing build parameters response: %w", err)
	}

	return &props, nil
}

// ActualParameter implements teamcity.BuildsClient.ActualParameter.
func (c *BuildsClient) ActualParameter(ctx context.Context, id int64, name string) (string, error) {
	props, err := c.ActualParameters(ctx, id)
	if err != nil {
		return "", err
	}

	value, ok := props.Value(name)
	if !ok {
		return "", fmt.Errorf("build %d parameter %q: %w", id, name, teamcity.ErrPropertyNotFound)
	}

	return value, nil
}

// CanceledInfo implements teamcity.BuildsClient.CanceledInfo. A nil comment
// with a nil error means the build was not canceled.
func (c *BuildsClient) CanceledInfo(ctx context.Context, id int64) (*teamcity.Comment, error) {
	build, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return build.CanceledInfo, nil
}

// Steps implements teamcity.BuildsClient.Steps.
func (c *BuildsClient) Steps(ctx context.Context, id int64) ([]teamcity.Step, error) {
	build, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, "buildTypes/id:"+build.BuildTypeID+"/steps", nil)
	if err != nil {
		return nil, fmt.Errorf("getting build steps: %w", err)
	}

	var steps teamcity.StepList

	err = resp.JSON(&steps)
	if err != nil {
		return nil, fmt.Errorf("parsing build steps response: %w", err)
	}

	return steps.Steps, nil
}

// Statistics implements teamcity.BuildsClient.Statistics.
func (c *BuildsClient) Statistics(ctx context.Context, id int64) (*teamcity.Properties, error) {
	resp, err := c.httpClient.Get(ctx, fmt.Sprintf("builds/id:%d/statistics", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting build statistics: %w", err)
	}

	var props teamcity.Properties

	err = resp.JSON(&props)
	if err != nil {
		return nil, fmt.Errorf("parsing build statistics response: %w", err)
	}

	return &props, nil
}

// Log implements teamcity.BuildsClient.Log.
func (c *BuildsClient) Log(ctx context.Context, id int64) (string, error) {
	query := url.Values{}
	query.Set("buildId", fmt.Sprintf("%d", id))

	text, err := c.httpClient.GetText(ctx, "downloadBuildLog.html", query)
	if err != nil {
		return "", fmt.Errorf("downloading build log: %w", err)
	}

	return text, nil
}

// Cancel implements teamcity.BuildsClient.Cancel.
func (c *BuildsClient) Cancel(ctx context.Context, id int64, comment string, readdToQueue bool) (*teamcity.Build, error) {
	request := &teamcity.CancelRequest{
		Comment:        comment,
		ReaddIntoQueue: readdToQueue,
	}

	resp, err := c.httpClient.Post(ctx, fmt.Sprintf("builds/id:%d", id), request)
	if err != nil {
		return nil, fmt.Errorf("canceling build: %w", err)
	}

	var build teamcity.Build

	err = resp.JSON(&build)
	if err != nil {
		return nil, fmt.Errorf("parsing cancel response: %w", err)
	}

	return &build, nil
}

// listBuilds fetches one build collection and optionally expands each
// summary entry into its full representation.
func (c *BuildsClient) listBuilds(ctx context.Context, path string, locator *teamcity.Locator, details bool) ([]teamcity.Build, error) {
	query := url.Values{}
	query.Set("locator", locator.String())

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("listing builds: %w", err)
	}

	var list teamcity.BuildList

	err = resp.JSON(&list)
	if err != nil {
		return nil, fmt.Errorf("parsing builds response: %w", err)
	}

	if !details {
		return list.Builds, nil
	}

	return c.expand(ctx, list.Builds)
}

// expand replaces each build summary with the full representation fetched
// one by one; the first failing fetch aborts the expansion.
func (c *BuildsClient) expand(ctx context.Context, summaries []teamcity.Build) ([]teamcity.Build, error) {
	builds := make([]teamcity.Build, 0, len(summaries))

	for _, summary := range summaries {
		build, err := c.Get(ctx, summary.ID)
		if err != nil {
			return nil, fmt.Errorf("expanding build %d: %w", summary.ID, err)
		}

		builds = append(builds, *build)
	}

	return builds, nil
}

func normalizeOptions(opts *teamcity.BuildListOptions) *teamcity.BuildListOptions {
	if opts == nil {
		return &teamcity.BuildListOptions{}
	}

	return opts
}

func countOrDefault(count, fallback int) int {
	if count > 0 {
		return count
	}

	return fallback
}
