package client

import (
	"context"
	"fmt"

	internalhttp "github.com/teamcity-go/teamcity-client/internal/http"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// UsersClient implements the teamcity.UsersClient interface.
type UsersClient struct {
	httpClient *internalhttp.Client
}

// NewUsersClient creates a new UsersClient.
func NewUsersClient(httpClient *internalhttp.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// Current implements teamcity.UsersClient.Current.
func (c *UsersClient) Current(ctx context.Context) (*teamcity.User, error) {
	return c.get(ctx, "users/current")
}

// Get implements teamcity.UsersClient.Get. An empty username resolves to
// the current user.
func (c *UsersClient) Get(ctx context.Context, username string) (*teamcity.User, error) {
	if username == "" {
		return c.Current(ctx)
	}

	// The server accepts the username under the id dimension here.
	return c.get(ctx, "users/id:"+username)
}

// List implements teamcity.UsersClient.List.
func (c *UsersClient) List(ctx context.Context) ([]teamcity.User, error) {
	resp, err := c.httpClient.Get(ctx, "users", nil)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	var list teamcity.UserList

	err = resp.JSON(&list)
	if err != nil {
		return nil, fmt.Errorf("parsing users response: %w", err)
	}

	return list.Users, nil
}

func (c *UsersClient) get(ctx context.Context, path string) (*teamcity.User, error) {
	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	var user teamcity.User

	err = resp.JSON(&user)
	if err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}
