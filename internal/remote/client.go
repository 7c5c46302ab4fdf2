// Package remote is the HTTP transport shared by the renderer, detector and
// solver clients.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/SeamusWaldron/rubiksify"
	"github.com/SeamusWaldron/rubiksify/internal/logging"
)

// DefaultTimeout bounds a single request when no client is supplied.
const DefaultTimeout = 60 * time.Second

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.OrDiscard(l)
	}
}

// Client performs requests against the external endpoints.
type Client struct {
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewClient creates a Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		timeout: DefaultTimeout,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Get issues GET endpoint?query.
func (c *Client) Get(ctx context.Context, endpoint, query string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, query, nil)
}

// Post issues POST endpoint?query with body as the raw request payload.
func (c *Client) Post(ctx context.Context, endpoint, query string, body []byte) ([]byte, error) {
	return c.do(ctx, http.MethodPost, endpoint, query, body)
}

// EscapeQuery escapes a whole query string as a single component.
func EscapeQuery(s string) string {
	return url.QueryEscape(s)
}

func (c *Client) do(ctx context.Context, method, endpoint, query string, body []byte) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endpoint %q: %v", rubiksify.ErrValidation, endpoint, err)
	}
	u.RawQuery = query

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", rubiksify.ErrTransport, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/octet-stream")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", rubiksify.ErrTransport, method, u.Host+u.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", rubiksify.ErrTransport, err)
	}

	c.logger.DebugContext(ctx, "remote call",
		"method", method,
		"host", u.Host,
		"path", u.Path,
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s returned HTTP %d", rubiksify.ErrTransport, method, u.Host+u.Path, resp.StatusCode)
	}
	return data, nil
}
