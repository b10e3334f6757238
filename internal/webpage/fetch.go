package webpage

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/quill-md/quill/internal/errors"
)

// Page holds the metadata extracted from a fetched web page.
type Page struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Canonical   string `json:"canonical"`
	Image       string `json:"image"`
	SiteName    string `json:"site_name"`
}

// Fetch retrieves a page and extracts its metadata. Transient network
// failures are retried with exponential backoff, HTTP errors are not.
func (c *Client) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var lastErr error
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		page, err := c.doFetch(ctx, pageURL)
		if err != nil {
			lastErr = err
			if !isRetryable(err) || attempt == c.retryAttempts {
				return nil, err
			}
			time.Sleep(backoffDelay(attempt))
			continue
		}
		return page, nil
	}
	return nil, lastErr
}

func (c *Client) doFetch(ctx context.Context, pageURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, errors.NewRateLimitErrorWithRetry("webpage fetch rate limited", retryAfter)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewFetchError(pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return ExtractMetadata(pageURL, string(body)), nil
}

// parseRetryAfter handles both delta-seconds and HTTP-date forms of the header.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(header)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

func isRetryable(err error) bool {
	var urlErr *url.Error
	if stdErrors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		// Network errors (connection resets etc.)
		if strings.Contains(urlErr.Error(), "connection") {
			return true
		}
	}
	return false
}

func backoffDelay(attempt int) time.Duration {
	// exponential backoff capped at 10 seconds
	delay := time.Duration(1<<uint(attempt-1)) * time.Second
	if delay > 10*time.Second {
		return 10 * time.Second
	}
	return delay
}
