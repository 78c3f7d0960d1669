// ABOUTME: CLI command to export the knowledge base for inspection
// ABOUTME: Writes every indexed chunk grouped by restaurant as YAML or Markdown
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportFormat string
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the knowledge base to YAML or Markdown",
		Long: `Export the knowledge base to YAML or Markdown.

Writes the chunks stored in the index, grouped by restaurant, along
with the embedding model the index was built with. Vectors are not
exported. Does not need an API token.

Formats:
  yaml      Structured export (default)
  markdown  Readable document, one section per restaurant

Examples:
  menuchat export
  menuchat export -o index.yaml
  menuchat export -f markdown -o index.md`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "Export format: yaml or markdown")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "yaml" && exportFormat != "markdown" {
		return fmt.Errorf("invalid export format %q (valid: yaml, markdown)", exportFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, index, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if exportOutput == "" {
		if exportFormat == "markdown" {
			return index.WriteMarkdown(cmd.OutOrStdout())
		}
		return index.WriteYAML(cmd.OutOrStdout())
	}

	if exportFormat == "markdown" {
		err = index.ExportToMarkdown(exportOutput)
	} else {
		err = index.ExportToYAML(exportOutput)
	}
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported index to %s\n", exportOutput)
	}
	return nil
}
