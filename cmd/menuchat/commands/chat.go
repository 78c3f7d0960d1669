// ABOUTME: CLI command for the interactive question and answer loop
// ABOUTME: Answers come only from the knowledge base built by the build command
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/menuchat/internal/chat"
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the restaurant knowledge base",
		Long: `Start an interactive chat over the restaurant knowledge base.

Each question retrieves the most relevant menu chunks and asks the
chat model to answer from them alone. The conversation lasts for
the process; type 'exit' or 'quit' (or press Ctrl-D) to leave.

Requires HF_TOKEN (or OPENAI_API_KEY) and an index built with
'menuchat build'.

Examples:
  menuchat chat
  echo "Which dishes are vegan?" | menuchat chat`,
		Args: cobra.NoArgs,
		RunE: runChat,
	}

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newAssistant(cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repl := chat.NewREPL(a.service)
	return repl.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), chat.NewSession())
}
