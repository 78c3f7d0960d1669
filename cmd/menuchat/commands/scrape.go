// ABOUTME: CLI command to scrape restaurant sites into the JSON data file
// ABOUTME: Prints a per-site summary table and a sample of the first menu
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/menuchat/internal/config"
	"github.com/harper/menuchat/internal/scraper"
)

const renderSettle = 2 * time.Second

var (
	scrapeSites    string
	scrapeOutput   string
	scrapeNoSample bool
)

// NewScrapeCmd creates the scrape command
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape restaurant menus and contact details",
		Long: `Scrape restaurant menus and contact details into a JSON file.

Sites are read from --sites, then ./sites.yaml, then
$XDG_CONFIG_HOME/menuchat/sites.yaml; without any file the two
built-in sites are used. Sites are fetched one at a time with a
random 2-4s pause between requests. A site that fails is kept in
the output as an error record.

Examples:
  menuchat scrape
  menuchat scrape --sites my-sites.yaml --output data/menus.json
  menuchat scrape --format json`,
		Args: cobra.NoArgs,
		RunE: runScrape,
	}

	cmd.Flags().StringVar(&scrapeSites, "sites", "", "Path to a YAML sites file")
	cmd.Flags().StringVarP(&scrapeOutput, "output", "o", "", "Output JSON path (default from MENUCHAT_DATA_FILE)")
	cmd.Flags().BoolVar(&scrapeNoSample, "no-sample", false, "Skip the detailed sample of the first menu")

	return cmd
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l := newLogger(cfg)

	sites, source, err := config.ResolveSites(scrapeSites)
	if err != nil {
		return err
	}
	if source == "" {
		l.Info("no sites file found, using built-in sites", "count", len(sites))
	} else {
		l.Info("loaded sites", "file", source, "count", len(sites))
	}

	output := scrapeOutput
	if output == "" {
		output = cfg.DataFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := scraper.New(scraper.NewHTTPFetcher(cfg.FetchTimeout, cfg.UserAgent), scraper.Options{
		DelayMin: cfg.DelayMin,
		DelayMax: cfg.DelayMax,
		Renderer: scraper.NewRenderFetcher(cfg.FetchTimeout, renderSettle, cfg.UserAgent),
		Logger:   l,
	})

	results := s.ScrapeAll(ctx, sites)

	if err := scraper.WriteResults(output, results); err != nil {
		return err
	}
	l.Info("saved results", "file", output, "restaurants", len(results))

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", data)
		return ctx.Err()
	}

	if !quiet {
		if err := scraper.WriteSummary(out, results); err != nil {
			return err
		}
		if !scrapeNoSample {
			scraper.WriteSample(out, results)
		}
	}

	return ctx.Err()
}
