// ABOUTME: Headless Chrome fetcher for menus rendered by JavaScript
// ABOUTME: Navigates with chromedp, waits for the page to settle, returns the DOM
package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// RenderFetcher loads pages in headless Chrome
type RenderFetcher struct {
	timeout   time.Duration
	settle    time.Duration
	userAgent string
}

// NewRenderFetcher creates a rendering fetcher; settle is how long to wait
// after navigation for client-side menus to appear
func NewRenderFetcher(timeout, settle time.Duration, userAgent string) *RenderFetcher {
	return &RenderFetcher{timeout: timeout, settle: settle, userAgent: userAgent}
}

// Fetch renders the page once and returns the serialized document
func (f *RenderFetcher) Fetch(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.UserAgent(f.userAgent))
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancel := context.WithTimeout(browserCtx, f.timeout+f.settle)
	defer cancel()

	var page string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(f.settle),
		chromedp.OuterHTML("html", &page, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return page, nil
}
