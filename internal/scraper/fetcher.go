// ABOUTME: Single-attempt page fetchers used by the scraper
// ABOUTME: Plain HTTP GET with browser headers and a fixed timeout
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxPageBytes is the largest response body accepted
const maxPageBytes = 5 * 1024 * 1024

// ErrPageTooLarge is returned when a body exceeds maxPageBytes
var ErrPageTooLarge = fmt.Errorf("page exceeds %d bytes", maxPageBytes)

// Fetcher retrieves the HTML of a page. Implementations make exactly one
// attempt per call.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// StatusError reports a non-200 response
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to fetch page: Status code %d", e.StatusCode)
}

// HTTPFetcher fetches pages with net/http
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher with the given per-request timeout
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch issues one GET and returns the body of a 200 response
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes+1))
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	if len(body) > maxPageBytes {
		return "", ErrPageTooLarge
	}
	return string(body), nil
}
