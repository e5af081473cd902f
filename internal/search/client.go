package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultMaxBodyBytes bounds how much of a response body is read. Larger
// bodies are rejected as a transport failure.
const DefaultMaxBodyBytes = 16 << 20

// Client issues search requests against GET <base URL>/search?query=...
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
	maxBody int64
}

// Option configures a Client during construction in NewClient.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes. Non-positive values are
// ignored.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient returns a Client for the given base URL, which must be an
// absolute http or https URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be an absolute http(s) url", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     zerolog.Nop(),
		maxBody: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured endpoint root.
func (c *Client) BaseURL() string { return c.baseURL }

// Search runs one query. It never returns a Go error: every failure is
// reported through the Outcome.
func (c *Client) Search(ctx context.Context, query string) Outcome {
	endpoint := c.baseURL + "/search?" + url.Values{"query": {query}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Failure(&Error{Kind: TransportFailure, Message: "build request: " + err.Error(), Err: err})
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("url", endpoint).Msg("search request failed")
		return Failure(&Error{Kind: TransportFailure, Message: err.Error(), Err: err})
	}
	defer func() { _ = resp.Body.Close() }()

	// One byte past the limit tells a full body from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return Failure(&Error{
			Kind:    TransportFailure,
			Status:  resp.StatusCode,
			Message: "read response body: " + err.Error(),
			Err:     err,
		})
	}
	if int64(len(body)) > c.maxBody {
		c.log.Debug().Str("url", endpoint).Int64("limit", c.maxBody).Msg("search response too large")
		return Failure(&Error{
			Kind:    TransportFailure,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("response too large: over %d bytes", c.maxBody),
		})
	}

	c.log.Debug().
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("search response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Failure(&Error{
			Kind:    TransportFailure,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("search: status %d", resp.StatusCode),
			Err:     fmt.Errorf("response: %s", snippet(body)),
		})
	}

	out := Normalize(body)
	if out.Err != nil && out.Err.Kind == TransportFailure {
		out.Err.Status = resp.StatusCode
	}
	return out
}

func snippet(body []byte) string {
	const max = 256
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
