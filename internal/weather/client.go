// Package weather issues current-weather queries against the OpenWeatherMap API
// and hands the response back without interpreting it.
package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Response is the fully read reply of the remote service.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the remote service answered with a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher describes anything able to execute a Request.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (*Response, error)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, primarily for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds the whole request. Zero keeps the transport defaults.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// Client performs one GET per Fetch call. It never retries.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

var _ Fetcher = (*Client)(nil)

// NewClient constructs a Client with the provided options.
func NewClient(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Fetch sends req and returns the status, headers and body as received.
// Non-2xx statuses are not errors.
func (c *Client) Fetch(ctx context.Context, req Request) (*Response, error) {
	target, err := req.URL()
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
	}, nil
}
