// ABOUTME: Root command and global flags for the menuchat CLI
// ABOUTME: Wires every subcommand and validates verbose/quiet/format
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// Global flags shared by all subcommands
var (
	verbose      bool
	quiet        bool
	outputFormat string
)

var validFormats = []string{"auto", "table", "json"}

const banner = `
███╗   ███╗███████╗███╗   ██╗██╗   ██╗ ██████╗██╗  ██╗ █████╗ ████████╗
████╗ ████║██╔════╝████╗  ██║██║   ██║██╔════╝██║  ██║██╔══██╗╚══██╔══╝
██╔████╔██║█████╗  ██╔██╗ ██║██║   ██║██║     ███████║███████║   ██║
██║╚██╔╝██║██╔══╝  ██║╚██╗██║██║   ██║██║     ██╔══██║██╔══██║   ██║
██║ ╚═╝ ██║███████╗██║ ╚████║╚██████╔╝╚██████╗██║  ██║██║  ██║   ██║
╚═╝     ╚═╝╚══════╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menuchat",
		Short: "Scrape restaurant menus and chat with them",
		Long: banner + `

Scrape restaurant menus and contact details, build a searchable
knowledge base from them, and ask questions answered only from
that knowledge base.

Typical flow:
  menuchat scrape
  menuchat build
  menuchat chat`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return errors.New("--verbose and --quiet cannot be used together")
			}
			if !containsString(validFormats, outputFormat) {
				return fmt.Errorf("invalid --format %q (valid: auto, table, json)", outputFormat)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")

	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewEvalCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
