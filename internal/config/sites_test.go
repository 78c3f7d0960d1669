// ABOUTME: Tests for YAML site list loading and validation
// ABOUTME: Covers defaults, profiles, and sentinel validation errors
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func writeSites(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), SitesFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadSites(t *testing.T) {
	path := writeSites(t, `
sites:
  - name: Bella Pasta
    url: https://bellapasta.example/menu
  - name: Tunday Kababi
    url: https://www.tundaykababi.example/
    profile: product-cards
    render: true
`)

	sites, err := LoadSites(path)
	if err != nil {
		t.Fatalf("LoadSites() error = %v", err)
	}
	if len(sites) != 2 {
		t.Fatalf("len(sites) = %d, want 2", len(sites))
	}
	if sites[0].Profile != ProfileGeneric {
		t.Errorf("default profile = %q, want %q", sites[0].Profile, ProfileGeneric)
	}
	if sites[1].Profile != ProfileProductCards || !sites[1].Render {
		t.Errorf("second site = %+v", sites[1])
	}
}

func TestLoadSites_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty list", "sites: []\n", ErrNoSites},
		{"missing name", "sites:\n  - url: https://a.example\n", ErrSiteMissingName},
		{"missing url", "sites:\n  - name: A\n", ErrSiteMissingURL},
		{"relative url", "sites:\n  - name: A\n    url: /menu\n", ErrSiteInvalidURL},
		{"ftp url", "sites:\n  - name: A\n    url: ftp://a.example/menu\n", ErrSiteInvalidURL},
		{"unknown profile", "sites:\n  - name: A\n    url: https://a.example\n    profile: magic\n", ErrSiteUnknownProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSites(writeSites(t, tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadSites() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadSites_BadYAML(t *testing.T) {
	if _, err := LoadSites(writeSites(t, "sites: [unterminated")); err == nil {
		t.Error("LoadSites() = nil error for malformed YAML")
	}
}

func TestResolveSites_Explicit(t *testing.T) {
	path := writeSites(t, "sites:\n  - name: A\n    url: https://a.example\n")

	sites, source, err := ResolveSites(path)
	if err != nil {
		t.Fatalf("ResolveSites() error = %v", err)
	}
	if source != path || len(sites) != 1 {
		t.Errorf("ResolveSites() = %v from %q", sites, source)
	}
}

func TestResolveSites_Defaults(t *testing.T) {
	wd, _ := os.Getwd()
	defer func() { _ = os.Chdir(wd) }()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	xdg.Reload()

	sites, source, err := ResolveSites("")
	if err != nil {
		t.Fatalf("ResolveSites() error = %v", err)
	}
	if source != "" {
		t.Errorf("source = %q, want built-in defaults", source)
	}
	if len(sites) != len(DefaultSites()) {
		t.Errorf("len(sites) = %d, want %d", len(sites), len(DefaultSites()))
	}
	if err := ValidateSites(sites); err != nil {
		t.Errorf("default sites invalid: %v", err)
	}
}

func TestLoadSites_ExampleFile(t *testing.T) {
	sites, err := LoadSites(filepath.Join("..", "..", "sites.example.yaml"))
	if err != nil {
		t.Fatalf("LoadSites() error = %v", err)
	}

	profiles := map[string]bool{}
	for _, s := range sites {
		profiles[s.Profile] = true
	}
	for _, want := range []string{ProfileGeneric, ProfileProductCards} {
		if !profiles[want] {
			t.Errorf("sites.example.yaml has no %q site", want)
		}
	}
}
