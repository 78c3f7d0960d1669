// ABOUTME: Scrape orchestration: fetch, parse, extract, and aggregate per site
// ABOUTME: Runs sites sequentially with a random politeness delay between requests
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"

	"github.com/harper/menuchat/internal/config"
	"github.com/harper/menuchat/internal/logger"
	"github.com/harper/menuchat/internal/models"
	"github.com/harper/menuchat/internal/util"
)

const noTitle = "No title found"

// Profile pairs the menu and contact extractors used for a site
type Profile struct {
	Menu    *MenuExtractor
	Contact *ContactExtractor
}

// ProfileFor returns the extractors for a configured profile name
func ProfileFor(name string) Profile {
	if name == config.ProfileProductCards {
		return Profile{Menu: NewCardMenuExtractor(), Contact: NewCardContactExtractor()}
	}
	return Profile{Menu: NewGenericMenuExtractor(), Contact: NewGenericContactExtractor()}
}

// Options configures a Scraper
type Options struct {
	DelayMin time.Duration
	DelayMax time.Duration
	// Renderer handles sites marked render: true; nil falls back to the fetcher
	Renderer Fetcher
	Logger   *log.Logger
}

// Scraper turns restaurant sites into records
type Scraper struct {
	fetcher  Fetcher
	renderer Fetcher
	delayMin time.Duration
	delayMax time.Duration
	logger   *log.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// New creates a Scraper around the given fetcher
func New(fetcher Fetcher, opts Options) *Scraper {
	l := opts.Logger
	if l == nil {
		l = logger.Discard()
	}
	return &Scraper{
		fetcher:  fetcher,
		renderer: opts.Renderer,
		delayMin: opts.DelayMin,
		delayMax: opts.DelayMax,
		logger:   l,
		sleep:    util.Sleep,
	}
}

// Scrape fetches one site and extracts its record. Fetch and parse failures
// become failure records rather than errors.
func (s *Scraper) Scrape(ctx context.Context, site config.Site) models.Restaurant {
	s.logger.Info("Scraping", "name", site.Name, "url", site.URL)

	fetcher := s.fetcher
	if site.Render && s.renderer != nil {
		fetcher = s.renderer
	}

	body, err := fetcher.Fetch(ctx, site.URL)
	if err != nil {
		s.logger.Warn("fetch failed", "name", site.Name, "err", err)
		return models.NewFailedRestaurant(site.Name, site.URL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		s.logger.Warn("parse failed", "name", site.Name, "err", err)
		return models.NewFailedRestaurant(site.Name, site.URL, fmt.Errorf("parsing page: %w", err))
	}

	return s.Extract(site, doc)
}

// Extract builds a record from an already parsed page
func (s *Scraper) Extract(site config.Site, doc *goquery.Document) models.Restaurant {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = noTitle
	}

	profile := ProfileFor(site.Profile)
	items := profile.Menu.Extract(doc)
	contact := profile.Contact.Extract(doc)

	s.logger.Debug("extracted",
		"name", site.Name,
		"profile", site.Profile,
		"menu_containers", CountMenuContainers(doc),
		"items", len(items))

	return models.NewRestaurant(site.Name, site.URL, title, items, contact)
}

// ScrapeAll scrapes sites in order, one at a time, sleeping a random delay
// between requests. The result has one entry per site in input order; if ctx
// is cancelled the remaining sites are recorded as failures.
func (s *Scraper) ScrapeAll(ctx context.Context, sites []config.Site) []models.Restaurant {
	results := make([]models.Restaurant, 0, len(sites))
	for i, site := range sites {
		if err := ctx.Err(); err != nil {
			results = append(results, models.NewFailedRestaurant(site.Name, site.URL, err))
			continue
		}

		results = append(results, s.Scrape(ctx, site))

		if i < len(sites)-1 {
			_ = s.sleep(ctx, util.RandomDelay(s.delayMin, s.delayMax))
		}
	}
	return results
}

// WriteResults saves the batch as an indented JSON array
func WriteResults(path string, results []models.Restaurant) error {
	if results == nil {
		results = []models.Restaurant{}
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// ReadResults loads a batch written by WriteResults
func ReadResults(path string) ([]models.Restaurant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}
	var results []models.Restaurant
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parsing results: %w", err)
	}
	return results, nil
}
