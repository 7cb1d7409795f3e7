// Package client implements the teamcity.Client interface: one resource
// client per API area, each method a URL template plus a call into the
// request executor.
package client

import (
	"github.com/teamcity-go/teamcity-client/internal/auth"
	internalhttp "github.com/teamcity-go/teamcity-client/internal/http"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// Client implements the teamcity.Client interface.
type Client struct {
	httpClient *internalhttp.Client
	method     teamcity.AuthMethod

	builds     teamcity.BuildsClient
	queue      teamcity.QueueClient
	artifacts  teamcity.ArtifactsClient
	changes    teamcity.ChangesClient
	projects   teamcity.ProjectsClient
	buildTypes teamcity.BuildTypesClient
	users      teamcity.UsersClient
	agents     teamcity.AgentsClient
	server     teamcity.ServerClient
}

// New creates a client over an already-resolved strategy and executor.
func New(strategy *auth.Strategy, httpClient *internalhttp.Client) *Client {
	client := &Client{
		httpClient: httpClient,
		method:     strategy.Method,
	}

	client.initializeResourceClients()

	return client
}

// AuthMethod implements teamcity.Client.AuthMethod.
func (c *Client) AuthMethod() teamcity.AuthMethod {
	return c.method
}

// Builds implements teamcity.Client.Builds.
func (c *Client) Builds() teamcity.BuildsClient {
	return c.builds
}

// Queue implements teamcity.Client.Queue.
func (c *Client) Queue() teamcity.QueueClient {
	return c.queue
}

// Artifacts implements teamcity.Client.Artifacts.
func (c *Client) Artifacts() teamcity.ArtifactsClient {
	return c.artifacts
}

// Changes implements teamcity.Client.Changes.
func (c *Client) Changes() teamcity.ChangesClient {
	return c.changes
}

// Projects implements teamcity.Client.Projects.
func (c *Client) Projects() teamcity.ProjectsClient {
	return c.projects
}

// BuildTypes implements teamcity.Client.BuildTypes.
func (c *Client) BuildTypes() teamcity.BuildTypesClient {
	return c.buildTypes
}

// Users implements teamcity.Client.Users.
func (c *Client) Users() teamcity.UsersClient {
	return c.users
}

// Agents implements teamcity.Client.Agents.
func (c *Client) Agents() teamcity.AgentsClient {
	return c.agents
}

// Server implements teamcity.Client.Server.
func (c *Client) Server() teamcity.ServerClient {
	return c.server
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	builds := NewBuildsClient(c.httpClient)

	c.builds = builds
	c.queue = NewQueueClient(c.httpClient, builds)
	c.artifacts = NewArtifactsClient(c.httpClient)
	c.changes = NewChangesClient(c.httpClient)
	c.projects = NewProjectsClient(c.httpClient)
	c.buildTypes = NewBuildTypesClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient)
	c.agents = NewAgentsClient(c.httpClient)
	c.server = NewServerClient(c.httpClient)
}
