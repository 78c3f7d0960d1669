// ABOUTME: CLI command to search the knowledge base without generating an answer
// ABOUTME: Prints the top matching chunks as a table or JSON
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	searchLimit int
)

// NewSearchCmd creates search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the menu knowledge base",
		Long: `Search the menu knowledge base using semantic similarity.

Embeds the query and returns the closest chunks from the index,
without asking the chat model for an answer. Useful for checking
what context a question would retrieve.

Examples:
  menuchat search "gluten-free desserts"
  menuchat search --limit 10 "opening hours"
  menuchat search --format json "spicy"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 4, "Maximum results to return")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Validate limit flag
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newAssistant(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer a.Close()

	query := args[0]
	results, err := a.retriever.Search(context.Background(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("searching index: %w", err)
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No chunks found for query: %s\n", query)
		}
		return nil
	}

	// Format output
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	// Table format
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tRESTAURANT\tCHUNK\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t----------\t-----\t-------\n")
	for _, result := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%d\t%s\n",
			result.SimilarityScore,
			truncate(result.Restaurant, 20),
			result.Seq,
			truncate(singleLine(result.Content), 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)", len(results))
		if meta, err := a.index.Meta(); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), " (index built %s)", formatTime(meta.BuiltAt))
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}
