// ABOUTME: CLI command to build the vector index from scraped data
// ABOUTME: Renders documents, splits them into chunks, embeds, and replaces the index
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/menuchat/internal/kb"
	"github.com/harper/menuchat/internal/llm"
	"github.com/harper/menuchat/internal/scraper"
	"github.com/harper/menuchat/internal/storage/sqlite"
)

var (
	buildInput     string
	buildBatchSize int
)

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the knowledge base from scraped data",
		Long: `Build the knowledge base from scraped restaurant data.

Each successfully scraped restaurant is rendered to a text document,
split into overlapping chunks, and embedded. The resulting index
replaces any previous one at MENUCHAT_INDEX_PATH. Failed scrape
records are skipped.

Requires HF_TOKEN (or OPENAI_API_KEY).

Examples:
  menuchat build
  menuchat build --input data/menus.json --batch-size 16`,
		Args: cobra.NoArgs,
		RunE: runBuild,
	}

	cmd.Flags().StringVarP(&buildInput, "input", "i", "", "Scraped JSON path (default from MENUCHAT_DATA_FILE)")
	cmd.Flags().IntVar(&buildBatchSize, "batch-size", kb.DefaultBatchSize, "Texts per embedding request")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(buildBatchSize, "batch-size"); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l := newLogger(cfg)

	input := buildInput
	if input == "" {
		input = cfg.DataFile
	}

	restaurants, err := scraper.ReadResults(input)
	if err != nil {
		return err
	}

	client, err := llm.NewOpenAIClient(cfg)
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	splitter, err := kb.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return err
	}

	db, err := sqlite.Open(sqlite.IndexDBPath(cfg.IndexPath))
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	builder := kb.NewBuilder(splitter, client, sqlite.NewIndex(db), client.EmbeddingModel(),
		kb.WithBatchSize(buildBatchSize),
		kb.WithLogger(l),
	)

	result, err := builder.Build(ctx, restaurants)
	if err != nil {
		return fmt.Errorf("building knowledge base: %w", err)
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(out, "%s\n", data)
		return nil
	}

	if !quiet {
		fmt.Fprintf(out, "✓ Indexed %d restaurant(s) into %d chunk(s)\n", result.Restaurants, result.Chunks)
		if result.Skipped > 0 {
			fmt.Fprintf(out, "  Skipped %d failed record(s)\n", result.Skipped)
		}
		fmt.Fprintf(out, "  Embedding model: %s (dimension %d)\n", client.EmbeddingModel(), result.Dimension)
		fmt.Fprintf(out, "  Index: %s\n", db.Path())
	}
	return nil
}
