// Package webpage fetches remote pages and extracts the metadata used to
// seed link posts.
package webpage

import (
	"net/http"
	"time"

	"github.com/quill-md/quill/internal/ratelimit"
)

const (
	defaultMaxAttempts   = 3
	defaultRatePerSecond = 2
	defaultMaxBodyBytes  = 2 << 20 // pages past 2MB are truncated, metadata lives in <head>
	defaultUserAgent     = "quill/1.0 (+https://github.com/quill-md/quill)"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client fetches web pages with rate limiting and retries.
type Client struct {
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
	userAgent     string
	maxBodyBytes  int64
}

// NewClient creates a new webpage client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		rateLimiter:   ratelimit.New("webpage", defaultRatePerSecond),
		retryAttempts: defaultMaxAttempts,
		userAgent:     defaultUserAgent,
		maxBodyBytes:  defaultMaxBodyBytes,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithRetryAttempts sets the number of retry attempts for failed requests.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// WithUserAgent sets the User-Agent header sent with fetch requests.
func WithUserAgent(ua string) Option {
	return func(client *Client) {
		if ua != "" {
			client.userAgent = ua
		}
	}
}
