package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default number of dispatch attempts per
	// request.
	DefaultRetryMax = 3
)

// REST base paths per authentication strategy.
const (
	// RESTPathToken serves token and session requests.
	RESTPathToken = "/app/rest"

	// RESTPathBasicAuth serves username/password requests.
	RESTPathBasicAuth = "/httpAuth/app/rest"

	// RESTPathGuest serves guest requests.
	RESTPathGuest = "/guestAuth/app/rest"
)

// Result count caps applied when the caller does not supply one.
const (
	// DefaultBuildCount caps build listings. Raising it is allowed but
	// loads the server.
	DefaultBuildCount = 10000

	// DefaultQueueCount caps queued build listings.
	DefaultQueueCount = 1000

	// DefaultChangeCount caps change listings.
	DefaultChangeCount = 1000

	// DefaultBuildTypeCount caps build configuration listings.
	DefaultBuildTypeCount = 1000
)
