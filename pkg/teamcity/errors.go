package teamcity

import (
	"errors"
	"fmt"
	"net/http"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired = errors.New("config is required")
	ErrServerRequired = errors.New("TeamCity server address is required")
	// ErrWritesRequireAuth is returned when a POST is attempted under the
	// session strategy, before any network call is made.
	ErrWritesRequireAuth = errors.New("write operations require token, user, or guest authentication")
	ErrPropertyNotFound  = errors.New("build property not found")
	// ErrNoBuilds is returned when a lookup that expects at least one build
	// matches none.
	ErrNoBuilds = errors.New("no builds matched the locator")
)

// RequestError is returned when every dispatch attempt for a request failed.
// StatusCode carries the status of the last attempt that produced a
// response; zero means no response was ever received.
type RequestError struct {
	Method     string
	URL        string
	StatusCode int
	Attempts   int

	// Err is the transport error of the last attempt, if any.
	Err error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s failed after %d attempts: server unavailable", e.Method, e.URL, e.Attempts)
	}

	return fmt.Sprintf("%s %s failed after %d attempts: status %d", e.Method, e.URL, e.Attempts, e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Unavailable reports whether no attempt received a response at all.
func (e *RequestError) Unavailable() bool {
	return e.StatusCode == 0
}

// DecodeError is returned when a response with a successful status carries a
// body that is not well-formed JSON. It is never retried.
type DecodeError struct {
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response body: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsRequestError checks if the error is a RequestError.
func IsRequestError(err error) bool {
	reqErr := &RequestError{}

	return errors.As(err, &reqErr)
}

// IsDecodeError checks if the error is a DecodeError.
func IsDecodeError(err error) bool {
	decErr := &DecodeError{}

	return errors.As(err, &decErr)
}

// IsNotFound checks if the error is a request failure whose final status
// was 404.
func IsNotFound(err error) bool {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks if the error is a request failure whose final
// status was 401 or 403.
func IsUnauthorized(err error) bool {
	reqErr := &RequestError{}
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode == http.StatusUnauthorized || reqErr.StatusCode == http.StatusForbidden
	}

	return false
}
