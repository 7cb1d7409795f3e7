// Package http executes requests against a TeamCity server on behalf of the
// resource clients: it merges headers, attaches the credentials of the
// resolved authentication strategy, retries failed dispatches up to a
// bounded budget, and exposes the three response shapes the API serves
// (JSON, plain text, raw file content).
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/teamcity-go/teamcity-client/internal/auth"
	"github.com/teamcity-go/teamcity-client/internal/constants"
	"github.com/teamcity-go/teamcity-client/pkg/teamcity"
)

// Client executes HTTP requests for one resolved authentication strategy.
// It holds a single underlying HTTP client whose transport is reused across
// sequential calls for connection reuse.
//
// A Client is not safe for concurrent use: the per-call retry plumbing is
// unguarded. Issue requests from one goroutine, or create one Client per
// goroutine sharing nothing.
type Client struct {
	strategy  *auth.Strategy
	session   *http.Client
	logger    teamcity.Logger
	userAgent string
	retryMax  int
	timeout   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the diagnostic logger. Logging is observational only.
func WithLogger(logger teamcity.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig sets the default number of dispatch attempts per request.
func WithRetryConfig(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.retryMax = attempts
		}
	}
}

// WithTimeout bounds each dispatch attempt with a client-side timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient substitutes the underlying HTTP client, mainly for tests.
func WithHTTPClient(session *http.Client) Option {
	return func(c *Client) {
		if session != nil {
			c.session = session
		}
	}
}

// NewClient creates a new executor for the given strategy.
func NewClient(strategy *auth.Strategy, opts ...Option) *Client {
	client := &Client{
		strategy: strategy,
		session:  &http.Client{},
		retryMax: constants.DefaultRetryMax,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Request describes one API call relative to the strategy's base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values

	// Headers are merged over the strategy's defaults; on key collision
	// the request entry wins. The map is never mutated.
	Headers map[string]string

	// Body is marshaled to JSON unless it is already a []byte.
	Body interface{}

	// Timeout bounds each dispatch attempt of this call; a timed-out
	// attempt counts against the retry budget. Zero falls back to the
	// client-wide timeout, which may itself be absent.
	Timeout time.Duration

	// Retries is the dispatch budget for this call. Zero falls back to the
	// client-wide default.
	Retries int
}

// Response is a successfully received API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON decodes the response body into v. A malformed body yields a
// DecodeError; retrying cannot fix it, so the caller should not.
func (r *Response) JSON(v interface{}) error {
	err := json.Unmarshal(r.Body, v)
	if err != nil {
		return &teamcity.DecodeError{Err: err}
	}

	return nil
}

// Text returns the response body interpreted as text, verbatim.
func (r *Response) Text() string {
	return string(r.Body)
}

// Do executes the request. Any transport error or non-200 status consumes
// one unit of the retry budget and the dispatch is repeated as-is, without
// backoff and regardless of the status code; only a 200 response succeeds.
// When the budget is exhausted the call fails with a RequestError carrying
// the last observed status, or zero if no response was ever received.
//
// Writes under the session strategy fail with ErrWritesRequireAuth before
// any dispatch.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	if method != http.MethodGet && !c.strategy.AllowsWrites() {
		return nil, fmt.Errorf("%s %s: %w", method, req.Path, teamcity.ErrWritesRequireAuth)
	}

	fullURL := c.strategy.BaseURL + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	attempts := req.Retries
	if attempts <= 0 {
		attempts = c.retryMax
	}

	timeout := req.Timeout
	if timeout == 0 {
		timeout = c.timeout
	}

	// The timeout bounds one dispatch, not the whole retry loop: a shallow
	// clone of the session carries it, so a timed-out attempt fails like
	// any other transport error and consumes one unit of the budget.
	session := c.session
	if timeout > 0 {
		clone := *c.session
		clone.Timeout = timeout
		session = &clone
	}

	body, err := marshalBody(req.Body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, value := range c.mergeHeaders(method, req.Headers, body != nil) {
		httpReq.Header.Set(key, value)
	}

	if c.strategy.Method == teamcity.AuthUserPassword {
		httpReq.SetBasicAuth(c.strategy.Username, c.strategy.Password)
	}

	// A fresh retry wrapper per call carries the per-call budget; the
	// session and its transport are shared so connections are reused.
	lastStatus := 0
	retryClient := &retryablehttp.Client{
		HTTPClient:   session,
		RetryMax:     attempts - 1,
		CheckRetry:   c.checkRetry(method, fullURL, &lastStatus),
		Backoff:      noBackoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
		RequestLogHook: func(_ retryablehttp.Logger, r *http.Request, attempt int) {
			c.logInfo("dispatching request", map[string]interface{}{
				"method":  r.Method,
				"url":     r.URL.String(),
				"attempt": attempt + 1,
			})
		},
	}

	httpResp, err := retryClient.Do(httpReq)
	if err != nil {
		reqErr := &teamcity.RequestError{
			Method:     method,
			URL:        fullURL,
			StatusCode: lastStatus,
			Attempts:   attempts,
			Err:        err,
		}
		c.logError("request failed", map[string]interface{}{
			"method": method,
			"url":    fullURL,
			"error":  reqErr.Error(),
		})

		return nil, reqErr
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	if httpResp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, httpResp.Body)

		reqErr := &teamcity.RequestError{
			Method:     method,
			URL:        fullURL,
			StatusCode: httpResp.StatusCode,
			Attempts:   attempts,
		}
		c.logError("request failed", map[string]interface{}{
			"method": method,
			"url":    fullURL,
			"status": httpResp.StatusCode,
		})

		return nil, reqErr
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
	}, nil
}

// Get executes a GET and returns the raw response for structured decoding.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// GetText executes a GET that expects a plain text body.
func (c *Client) GetText(ctx context.Context, path string, query url.Values) (string, error) {
	resp, err := c.Do(ctx, &Request{
		Method:  http.MethodGet,
		Path:    path,
		Query:   query,
		Headers: map[string]string{"Accept": "text/plain"},
	})
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

// GetFile executes a GET that expects raw file content.
func (c *Client) GetFile(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := c.Do(ctx, &Request{
		Method:  http.MethodGet,
		Path:    path,
		Query:   query,
		Headers: map[string]string{"Accept": "application/octet-stream"},
	})
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

// Post executes a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// checkRetry implements the blind retry policy: any transport error or
// non-200 status is retried identically until the budget runs out. Failed
// attempts are logged here; logging must not alter control flow.
func (c *Client) checkRetry(method, fullURL string, lastStatus *int) retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		if err != nil {
			c.logError("dispatch error", map[string]interface{}{
				"method": method,
				"url":    fullURL,
				"error":  err.Error(),
			})

			return true, nil
		}

		*lastStatus = resp.StatusCode

		if resp.StatusCode != http.StatusOK {
			c.logError("unexpected status", map[string]interface{}{
				"method": method,
				"url":    fullURL,
				"status": resp.StatusCode,
			})

			return true, nil
		}

		return false, nil
	}
}

// mergeHeaders builds a fresh header map from the strategy defaults and the
// per-request extras; the extras win on collision and neither input map is
// mutated.
func (c *Client) mergeHeaders(method string, extra map[string]string, hasBody bool) map[string]string {
	headers := make(map[string]string, len(c.strategy.Headers)+len(extra)+2)

	for key, value := range c.strategy.Headers {
		headers[key] = value
	}

	if c.userAgent != "" {
		headers["User-Agent"] = c.userAgent
	}

	if method != http.MethodGet && hasBody {
		headers["Content-Type"] = "application/json"
	}

	for key, value := range extra {
		headers[key] = value
	}

	return headers
}

func marshalBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}

	if raw, ok := body.([]byte); ok {
		return raw, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}

	return data, nil
}

// noBackoff retries immediately: most failures this client sees are
// transient network blips and the budget is small. Callers needing smarter
// backoff wrap the executor.
func noBackoff(_, _ time.Duration, _ int, _ *http.Response) time.Duration {
	return 0
}

func (c *Client) logInfo(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Info(msg, fields)
	}
}

func (c *Client) logError(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Error(msg, fields)
	}
}
