// ABOUTME: Restaurant site list loaded from YAML
// ABOUTME: Falls back to the built-in sites when no file is found
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Site list validation errors.
var (
	ErrNoSites            = errors.New("at least one site is required")
	ErrSiteMissingName    = errors.New("site name is required")
	ErrSiteMissingURL     = errors.New("site url is required")
	ErrSiteInvalidURL     = errors.New("site url must be absolute http(s)")
	ErrSiteUnknownProfile = errors.New("site profile must be 'generic' or 'product-cards'")
)

// Extraction profiles
const (
	ProfileGeneric      = "generic"
	ProfileProductCards = "product-cards"
)

// SitesFileName is looked up in the working directory, then the XDG config dir
const SitesFileName = "sites.yaml"

// Site is one restaurant page to scrape
type Site struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Profile string `yaml:"profile"`
	Render  bool   `yaml:"render"`
}

// SitesFile is the on-disk shape of the site list
type SitesFile struct {
	Sites []Site `yaml:"sites"`
}

// DefaultSites are scraped when no sites file exists
func DefaultSites() []Site {
	return []Site{
		{Name: "Bresca", URL: "https://www.jainshikanji.com/menu/", Profile: ProfileGeneric},
		{Name: "Quay", URL: "https://www.quay.com.au/menu/", Profile: ProfileGeneric},
	}
}

// LoadSites reads and validates a YAML site list
func LoadSites(path string) ([]Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sites file: %w", err)
	}

	var file SitesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing sites file: %w", err)
	}

	for i := range file.Sites {
		if file.Sites[i].Profile == "" {
			file.Sites[i].Profile = ProfileGeneric
		}
	}

	if err := ValidateSites(file.Sites); err != nil {
		return nil, err
	}
	return file.Sites, nil
}

// ResolveSites loads the explicit path when given; otherwise it searches the
// working directory and XDG config dir, falling back to DefaultSites
func ResolveSites(explicit string) ([]Site, string, error) {
	if explicit != "" {
		sites, err := LoadSites(explicit)
		return sites, explicit, err
	}

	if _, err := os.Stat(SitesFileName); err == nil {
		sites, err := LoadSites(SitesFileName)
		return sites, SitesFileName, err
	}

	if path, err := xdg.SearchConfigFile("menuchat/" + SitesFileName); err == nil {
		sites, err := LoadSites(path)
		return sites, path, err
	}

	return DefaultSites(), "", nil
}

// ValidateSites checks every site entry
func ValidateSites(sites []Site) error {
	if len(sites) == 0 {
		return ErrNoSites
	}
	for i, s := range sites {
		if s.Name == "" {
			return fmt.Errorf("site %d: %w", i, ErrSiteMissingName)
		}
		if s.URL == "" {
			return fmt.Errorf("site %q: %w", s.Name, ErrSiteMissingURL)
		}
		u, err := url.Parse(s.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("site %q: %w", s.Name, ErrSiteInvalidURL)
		}
		switch s.Profile {
		case "", ProfileGeneric, ProfileProductCards:
		default:
			return fmt.Errorf("site %q: %w", s.Name, ErrSiteUnknownProfile)
		}
	}
	return nil
}
