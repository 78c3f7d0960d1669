// ABOUTME: Tests for batch scraping and result persistence
// ABOUTME: Covers ordering, failure records, delays, rendering, and JSON output
package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harper/menuchat/internal/config"
	"github.com/harper/menuchat/internal/models"
)

const menuPage = `<html><head><title>Green Fork</title>
<script type="application/ld+json">{"@type":"Restaurant","address":{"streetAddress":"123 Main St","addressLocality":"Springfield","addressRegion":"IL","postalCode":"62701"}}</script>
</head><body><ul><li>Spicy Tofu $9.00</li><li>Vegan Curry $12.50</li><li>Fries $5</li></ul>
<p>Find us: 500 Other Street, Elsewhere</p></body></html>`

type stubFetcher struct {
	pages map[string]string
	calls []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	page, ok := f.pages[url]
	if !ok {
		return "", &StatusError{StatusCode: http.StatusNotFound}
	}
	return page, nil
}

func newTestScraper(f Fetcher, opts Options) (*Scraper, *int) {
	s := New(f, opts)
	sleeps := 0
	s.sleep = func(context.Context, time.Duration) error {
		sleeps++
		return nil
	}
	return s, &sleeps
}

func TestScrapeAll_PreservesOrderAndFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(menuPage))
	}))
	defer srv.Close()

	sites := []config.Site{
		{Name: "First", URL: srv.URL + "/a"},
		{Name: "Broken", URL: srv.URL + "/missing"},
		{Name: "Third", URL: srv.URL + "/c"},
	}
	s, sleeps := newTestScraper(NewHTTPFetcher(time.Second, "ua"), Options{})

	results := s.ScrapeAll(context.Background(), sites)

	if len(results) != len(sites) {
		t.Fatalf("got %d results, want %d", len(results), len(sites))
	}
	for i, site := range sites {
		if results[i].Name != site.Name || results[i].URL != site.URL {
			t.Errorf("results[%d] = %s/%s, want %s/%s", i, results[i].Name, results[i].URL, site.Name, site.URL)
		}
	}
	if !results[1].Failed() || results[1].Error != "Failed to fetch page: Status code 404" {
		t.Errorf("results[1].Error = %q", results[1].Error)
	}
	if results[0].Failed() || results[0].ItemCount != 3 {
		t.Errorf("results[0] = %+v", results[0])
	}
	if *sleeps != len(sites)-1 {
		t.Errorf("slept %d times, want %d", *sleeps, len(sites)-1)
	}
}

func TestScrape_RecordContents(t *testing.T) {
	f := &stubFetcher{pages: map[string]string{"https://greenfork.example": menuPage}}
	s, _ := newTestScraper(f, Options{})

	r := s.Scrape(context.Background(), config.Site{Name: "Green Fork", URL: "https://greenfork.example"})

	if r.Title != "Green Fork" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.ContactInfo.Address != "123 Main St, Springfield, IL 62701" {
		t.Errorf("Address = %q, want structured address", r.ContactInfo.Address)
	}
	if r.PriceRange != (models.PriceRange{Min: 5, Max: 12.5}) {
		t.Errorf("PriceRange = %+v", r.PriceRange)
	}
	want := models.DietaryOptions{VegetarianCount: 1, VeganCount: 1, SpicyCount: 1}
	if r.DietaryOptions != want {
		t.Errorf("DietaryOptions = %+v, want %+v", r.DietaryOptions, want)
	}
}

func TestScrape_NoTitle(t *testing.T) {
	f := &stubFetcher{pages: map[string]string{"u": "<html><body><p>hi</p></body></html>"}}
	s, _ := newTestScraper(f, Options{})

	r := s.Scrape(context.Background(), config.Site{Name: "n", URL: "u"})

	if r.Title != noTitle {
		t.Errorf("Title = %q, want %q", r.Title, noTitle)
	}
	if r.MenuItems == nil || r.ItemCount != 0 {
		t.Errorf("MenuItems = %v, ItemCount = %d", r.MenuItems, r.ItemCount)
	}
	if r.PriceRange != (models.PriceRange{}) {
		t.Errorf("PriceRange = %+v, want zero", r.PriceRange)
	}
}

func TestScrape_RenderSitesUseRenderer(t *testing.T) {
	plain := &stubFetcher{pages: map[string]string{"u": menuPage}}
	rendered := &stubFetcher{pages: map[string]string{"u": menuPage}}
	s, _ := newTestScraper(plain, Options{Renderer: rendered})

	s.Scrape(context.Background(), config.Site{Name: "js", URL: "u", Render: true})
	s.Scrape(context.Background(), config.Site{Name: "static", URL: "u"})

	if len(rendered.calls) != 1 || len(plain.calls) != 1 {
		t.Errorf("renderer calls = %d, fetcher calls = %d; want 1 and 1", len(rendered.calls), len(plain.calls))
	}
}

func TestScrapeAll_Cancelled(t *testing.T) {
	f := &stubFetcher{pages: map[string]string{"a": menuPage, "b": menuPage}}
	s, _ := newTestScraper(f, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := s.ScrapeAll(ctx, []config.Site{{Name: "A", URL: "a"}, {Name: "B", URL: "b"}})

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if !r.Failed() || !strings.Contains(r.Error, context.Canceled.Error()) {
			t.Errorf("result %s error = %q", r.Name, r.Error)
		}
	}
	if len(f.calls) != 0 {
		t.Errorf("fetcher called %d times after cancel", len(f.calls))
	}
}

func TestScrapeAll_Empty(t *testing.T) {
	s, sleeps := newTestScraper(&stubFetcher{}, Options{})

	results := s.ScrapeAll(context.Background(), nil)

	if len(results) != 0 || *sleeps != 0 {
		t.Errorf("results = %d, sleeps = %d", len(results), *sleeps)
	}
}

func TestWriteAndReadResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "restaurant_data.json")
	results := []models.Restaurant{
		models.NewRestaurant("Ok", "https://ok.example", "Ok Cafe",
			[]models.MenuItem{{Item: "Soup", Price: "$5", Description: "Soup $5"}}, models.NewContactInfo()),
		models.NewFailedRestaurant("Down", "https://down.example", errors.New("request failed: timeout")),
	}

	if err := WriteResults(path, results); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "[\n  {\n    \"name\": \"Ok\"") {
		t.Errorf("output not indented with two spaces:\n%s", data)
	}

	var raw []map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if len(raw[1]) != 3 {
		t.Errorf("failure object has keys %v, want name/url/error only", raw[1])
	}

	got, err := ReadResults(path)
	if err != nil {
		t.Fatalf("ReadResults() error = %v", err)
	}
	if len(got) != 2 || got[0].ItemCount != 1 || !got[1].Failed() {
		t.Errorf("ReadResults() = %+v", got)
	}
}

func TestReadResults_Missing(t *testing.T) {
	if _, err := ReadResults(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ReadResults() expected error for missing file")
	}
}
