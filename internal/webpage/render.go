package webpage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const defaultRenderTimeout = 60 * time.Second

var (
	chromedpExecAllocator = chromedp.NewExecAllocator
	chromedpContext       = chromedp.NewContext
	chromedpRunner        = chromedp.Run
)

// RenderOptions holds configuration for headless page rendering.
type RenderOptions struct {
	Headless  bool
	Timeout   time.Duration
	UserAgent string
	WaitFor   string // CSS selector to wait for before reading the DOM
}

var renderPage = renderWithChromedp

// Render loads a page in a headless browser and returns the DOM after
// scripts have run. Use this for pages whose metadata is injected
// client-side.
func (c *Client) Render(ctx context.Context, pageURL string, opts RenderOptions) (string, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	if opts.Timeout == 0 {
		opts.Timeout = defaultRenderTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = c.userAgent
	}
	if opts.WaitFor == "" {
		opts.WaitFor = "body"
	}

	return renderPage(ctx, pageURL, opts)
}

// FetchRendered renders a page and extracts metadata from the resulting DOM.
func (c *Client) FetchRendered(ctx context.Context, pageURL string, opts RenderOptions) (*Page, error) {
	html, err := c.Render(ctx, pageURL, opts)
	if err != nil {
		return nil, err
	}
	return ExtractMetadata(pageURL, html), nil
}

func renderWithChromedp(parentCtx context.Context, pageURL string, opts RenderOptions) (string, error) {
	ctx, cancel := context.WithTimeout(parentCtx, opts.Timeout)
	defer cancel()

	allocCtx, cancelAllocator := chromedpExecAllocator(ctx, buildExecAllocatorOptions(opts)...)
	defer cancelAllocator()

	browserCtx, cancelBrowser := chromedpContext(allocCtx)
	defer cancelBrowser()

	slog.Debug("Rendering page in headless browser", "url", pageURL, "headless", opts.Headless)

	headers := network.Headers{"Accept-Language": "en-US,en;q=0.9"}

	var html string
	err := chromedpRunner(browserCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(headers),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady(opts.WaitFor, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", pageURL, err)
	}

	slog.Debug("Rendered page", "url", pageURL, "html_length", len(html))
	return html, nil
}

func buildExecAllocatorOptions(opts RenderOptions) []chromedp.ExecAllocatorOption {
	return []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.UserAgent(opts.UserAgent),
	}
}
