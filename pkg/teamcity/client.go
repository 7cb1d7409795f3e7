package teamcity

import (
	"context"
	"net/http"
	"time"
)

// AuthMethod identifies which of the mutually exclusive authentication
// strategies a client resolved at construction time.
type AuthMethod string

const (
	// AuthToken authenticates with a bearer access token.
	AuthToken AuthMethod = "token"
	// AuthUserPassword authenticates with HTTP basic credentials.
	AuthUserPassword AuthMethod = "user"
	// AuthGuest uses the server's guest login.
	AuthGuest AuthMethod = "guest"
	// AuthSession carries no credentials and relies on an existing browser
	// session cookie. Write operations are rejected under this method.
	AuthSession AuthMethod = "session"
)

// Client provides access to the TeamCity REST API.
type Client interface {
	Builds() BuildsClient
	Queue() QueueClient
	Artifacts() ArtifactsClient
	Changes() ChangesClient
	Projects() ProjectsClient
	BuildTypes() BuildTypesClient
	Users() UsersClient
	Agents() AgentsClient
	Server() ServerClient

	// AuthMethod reports the authentication strategy selected from the
	// configuration this client was built with.
	AuthMethod() AuthMethod
}

// BuildsClient accesses build records.
type BuildsClient interface {
	// List returns builds, newest first. A zero options value lists every
	// build up to the default count cap.
	List(ctx context.Context, opts *BuildListOptions) ([]Build, error)
	// ListByDate restricts List to builds queued between start and finish.
	// Dates use the server's compact format, e.g. 20240801T000000+0000.
	ListByDate(ctx context.Context, start, finish string, opts *BuildListOptions) ([]Build, error)
	// ListByLocator appends a caller-supplied locator fragment to the
	// default filter. The fragment is passed to the server verbatim.
	ListByLocator(ctx context.Context, locator string, opts *BuildListOptions) ([]Build, error)
	Get(ctx context.Context, id int64) (*Build, error)
	// Latest returns the most recent build of a build type, or the most
	// recent successful one when successOnly is set.
	Latest(ctx context.Context, buildTypeID string, successOnly bool) (*Build, error)
	// Dependencies returns the builds the given build snapshot-depends on.
	Dependencies(ctx context.Context, id int64, count int) ([]Build, error)
	// ActualParameters returns the resulting (actual) parameters of a
	// finished build.
	ActualParameters(ctx context.Context, id int64) (*Properties, error)
	// ActualParameter returns one resulting parameter by name.
	ActualParameter(ctx context.Context, id int64, name string) (string, error)
	// CanceledInfo returns the cancellation comment of a canceled build.
	CanceledInfo(ctx context.Context, id int64) (*Comment, error)
	// Steps returns the build steps of the build's configuration.
	Steps(ctx context.Context, id int64) ([]Step, error)
	Statistics(ctx context.Context, id int64) (*Properties, error)
	// Log downloads the build log as plain text.
	Log(ctx context.Context, id int64) (string, error)
	// Cancel stops a running build. readdToQueue returns it to the queue
	// instead of discarding it.
	Cancel(ctx context.Context, id int64, comment string, readdToQueue bool) (*Build, error)
}

// QueueClient accesses the build queue.
type QueueClient interface {
	List(ctx context.Context, opts *BuildListOptions) ([]Build, error)
	// Trigger adds a build to the queue and returns the queued build.
	Trigger(ctx context.Context, req *TriggerRequest) (*Build, error)
	// Cancel removes a queued build from the queue.
	Cancel(ctx context.Context, id int64, comment string) (*Build, error)
}

// ArtifactsClient accesses build artifacts.
type ArtifactsClient interface {
	// List returns the artifact entries under path; an empty path lists the
	// artifact root.
	List(ctx context.Context, buildID int64, path string) ([]File, error)
	// Download fetches an artifact's raw content.
	Download(ctx context.Context, buildID int64, path string) ([]byte, error)
}

// ChangesClient accesses VCS changes.
type ChangesClient interface {
	List(ctx context.Context, buildTypeID string, count int) ([]Change, error)
	// Pending returns changes not yet built by the build type.
	Pending(ctx context.Context, buildTypeID string, count int) ([]Change, error)
}

// ProjectsClient accesses projects.
type ProjectsClient interface {
	List(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	// BuildTypes returns the build configurations of a project. When
	// details is set each entry is fetched individually for its full
	// representation.
	BuildTypes(ctx context.Context, projectID string, details bool) ([]BuildType, error)
}

// BuildTypesClient accesses build configurations.
type BuildTypesClient interface {
	List(ctx context.Context, count int) ([]BuildType, error)
	Get(ctx context.Context, id string) (*BuildType, error)
}

// UsersClient accesses server users.
type UsersClient interface {
	// Current returns the user the client is authenticated as.
	Current(ctx context.Context) (*User, error)
	Get(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
}

// AgentsClient accesses build agents.
type AgentsClient interface {
	List(ctx context.Context) ([]Agent, error)
	Get(ctx context.Context, id int64) (*Agent, error)
}

// ServerClient accesses server-level information.
type ServerClient interface {
	Info(ctx context.Context) (*ServerInfo, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration.
//
// # Authentication precedence
//
// Exactly one authentication strategy is selected at construction, in this
// order; later fields are ignored once one matches:
//  1. Token: used as a static Bearer token against {server}/app/rest.
//  2. Username and Password: HTTP basic auth against
//     {server}/httpAuth/app/rest.
//  3. Guest: unauthenticated guest access against
//     {server}/guestAuth/app/rest.
//  4. None of the above: the client assumes an existing browser session and
//     talks to {server}/app/rest. POST operations fail immediately with
//     ErrWritesRequireAuth under this strategy.
//
// Fields left at their zero value are filled from Lookup before the
// strategy is selected; explicit values always win.
type Config struct {
	// ServerURL is the TeamCity server address. A missing scheme defaults
	// to https:// and one trailing slash is stripped.
	ServerURL string

	Token    string
	Username string
	Password string
	Guest    bool

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// RetryMax is the number of dispatch attempts per request. Every
	// transport error and every non-200 status consumes one attempt.
	// Defaults to 3.
	RetryMax int

	// RequestTimeout bounds each individual request when set. Zero means
	// no client-side timeout.
	RequestTimeout time.Duration

	// Logger receives diagnostic output. Nil disables logging.
	Logger Logger

	// HTTPClient overrides the underlying HTTP client, mainly for tests.
	HTTPClient *http.Client

	// Lookup fills unset credential fields, keyed by TEAMCITY_SERVER,
	// TEAMCITY_TOKEN, TEAMCITY_USER, TEAMCITY_PASSWORD and TEAMCITY_GUEST.
	// Defaults to os.Getenv; substitute a stub in tests to avoid ambient
	// environment reads.
	Lookup func(key string) string
}
