// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents search and ask about the menu knowledge base via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/menuchat/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs menuchat as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to search menus, ask questions, and list the
indexed restaurants via stdio.

Tools: search_menu, ask_menu, list_restaurants.
The server keeps one conversation session for its lifetime.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  menuchat mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "menuchat": {
  #       "command": "menuchat",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// stdout carries the protocol; logs stay on stderr
	l := newLogger(cfg)

	a, err := newAssistant(cfg, l)
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer("menuchat", versionInfo.Version)
	mcp.RegisterTools(server, a.retriever, a.service, a.index, cfg.TopK)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l.Info("MCP server starting on stdio")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		l.Info("shutdown signal received")
		if err := a.Close(); err != nil {
			l.Warn("error closing index", "err", err)
		}
		l.Info("shutdown complete")

	case err := <-serverErr:
		_ = a.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
