package webpage

import (
	"context"
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-md/quill/internal/cache"
	"github.com/quill-md/quill/internal/testutil"
)

func setupWebpageCache(t *testing.T) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	env := testutil.NewTestEnv(t)
	testutil.SetupTestCache(t, env)

	require.NoError(t, cache.ResetGlobalCache())
	t.Cleanup(func() { _ = cache.ResetGlobalCache() })
}

func TestCachedFetch_SecondCallHitsCache(t *testing.T) {
	setupWebpageCache(t)

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(`<html><head><title>Cached Page</title></head></html>`))
	}))
	defer server.Close()

	client := NewClient(WithHTTPClient(server.Client()), WithRateLimiter(nil))

	page, fromCache, err := client.CachedFetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, "Cached Page", page.Title)
	assert.Equal(t, 1, requests)

	page, fromCache, err = client.CachedFetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, "Cached Page", page.Title)
	assert.Equal(t, 1, requests, "second fetch should be served from cache")
}

func TestCachedFetch_UntitledPageNotCached(t *testing.T) {
	setupWebpageCache(t)

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte(`<html><body>no head at all</body></html>`))
	}))
	defer server.Close()

	client := NewClient(WithHTTPClient(server.Client()), WithRateLimiter(nil))

	_, fromCache, err := client.CachedFetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, fromCache)

	_, fromCache, err = client.CachedFetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, 2, requests, "untitled pages should be fetched again")
}

func TestCachedFetch_ErrorsNotCached(t *testing.T) {
	setupWebpageCache(t)

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`<html><head><title>Back Up</title></head></html>`))
	}))
	defer server.Close()

	client := NewClient(WithHTTPClient(server.Client()), WithRetryAttempts(1), WithRateLimiter(nil))

	_, _, err := client.CachedFetch(context.Background(), server.URL)
	require.Error(t, err)

	page, fromCache, err := client.CachedFetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, "Back Up", page.Title)
}

func TestCachedRender_SecondCallHitsCache(t *testing.T) {
	setupWebpageCache(t)

	var renders int
	stubRenderPage(t, func(ctx context.Context, pageURL string, opts RenderOptions) (string, error) {
		renders++
		return `<html><head><title>Rendered</title></head></html>`, nil
	})

	client := NewClient(WithRateLimiter(nil))

	html, fromCache, err := client.CachedRender(context.Background(), "https://example.com/app", RenderOptions{})
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Contains(t, html, "Rendered")
	assert.Equal(t, 1, renders)

	html, fromCache, err = client.CachedRender(context.Background(), "https://example.com/app", RenderOptions{})
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Contains(t, html, "Rendered")
	assert.Equal(t, 1, renders, "second render should be served from cache")
}

func TestCachedRender_FailureNotCached(t *testing.T) {
	setupWebpageCache(t)

	var renders int
	stubRenderPage(t, func(ctx context.Context, pageURL string, opts RenderOptions) (string, error) {
		renders++
		if renders == 1 {
			return "", stdErrors.New("browser unavailable")
		}
		return "<html></html>", nil
	})

	client := NewClient(WithRateLimiter(nil))

	_, _, err := client.CachedRender(context.Background(), "https://example.com/", RenderOptions{})
	require.Error(t, err)

	_, fromCache, err := client.CachedRender(context.Background(), "https://example.com/", RenderOptions{})
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, 2, renders)
}

func TestNormalizeURLKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://example.com/post/", "example.com/post"},
		{"http://example.com/post", "example.com/post"},
		{"  https://example.com/  ", "example.com"},
		{"example.com/post", "example.com/post"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeURLKey(tt.input), "input %q", tt.input)
	}
}
