package webpage

import (
	"context"
	"strings"

	"github.com/quill-md/quill/internal/cache"
)

// CachedPage wraps Page for caching.
type CachedPage struct {
	Page *Page `json:"page"`
}

// CachedRenderResult wraps rendered HTML for caching.
type CachedRenderResult struct {
	HTML string `json:"html"`
}

// CachedFetch fetches page metadata through the webpage cache. Pages that
// come back without a title are not cached so a later attempt can retry.
func (c *Client) CachedFetch(ctx context.Context, pageURL string) (*Page, bool, error) {
	cacheKey := normalizeURLKey(pageURL)

	result, fromCache, err := cache.GetOrFetchWithPolicy("webpage_cache", cacheKey, func() (*CachedPage, error) {
		page, fetchErr := c.Fetch(ctx, pageURL)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return &CachedPage{Page: page}, nil
	}, func(result *CachedPage) bool {
		return result != nil && result.Page != nil && result.Page.Title != ""
	})

	if err != nil {
		return nil, false, err
	}

	return result.Page, fromCache, nil
}

// CachedRender renders a page through the render cache.
func (c *Client) CachedRender(ctx context.Context, pageURL string, opts RenderOptions) (string, bool, error) {
	cacheKey := normalizeURLKey(pageURL)

	result, fromCache, err := cache.GetOrFetchWithPolicy("render_cache", cacheKey, func() (*CachedRenderResult, error) {
		html, renderErr := c.Render(ctx, pageURL, opts)
		if renderErr != nil {
			return nil, renderErr
		}
		return &CachedRenderResult{HTML: html}, nil
	}, func(result *CachedRenderResult) bool {
		return result != nil && result.HTML != ""
	})

	if err != nil {
		return "", false, err
	}

	return result.HTML, fromCache, nil
}

// normalizeURLKey normalizes a URL for use as a cache key. Scheme and
// trailing slash variations map to the same entry.
func normalizeURLKey(pageURL string) string {
	key := strings.TrimSpace(pageURL)
	key = strings.TrimPrefix(key, "https://")
	key = strings.TrimPrefix(key, "http://")
	return strings.TrimSuffix(key, "/")
}
