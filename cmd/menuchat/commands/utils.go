// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Config and logger setup, index and client wiring, and display formatting
package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/harper/menuchat/internal/chat"
	"github.com/harper/menuchat/internal/config"
	"github.com/harper/menuchat/internal/llm"
	"github.com/harper/menuchat/internal/logger"
	"github.com/harper/menuchat/internal/storage/sqlite"
)

// loadConfig loads .env (if present) and the environment configuration
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the stderr logger honoring --verbose and --quiet
func newLogger(cfg *config.Config) *log.Logger {
	return logger.Default(logLevel(cfg.LogLevel))
}

func logLevel(configured string) string {
	switch {
	case verbose:
		return "debug"
	case quiet:
		return "error"
	default:
		return configured
	}
}

// openIndex opens an existing index built by the build command
func openIndex(cfg *config.Config) (*sqlite.DB, *sqlite.Index, error) {
	db, err := sqlite.OpenExisting(sqlite.IndexDBPath(cfg.IndexPath))
	if err != nil {
		return nil, nil, fmt.Errorf("opening index (run 'menuchat build' first): %w", err)
	}
	return db, sqlite.NewIndex(db), nil
}

// assistant bundles what the chat-style commands need
type assistant struct {
	db        *sqlite.DB
	index     *sqlite.Index
	retriever *chat.VectorRetriever
	service   *chat.Service
}

func (a *assistant) Close() error {
	return a.db.Close()
}

// newAssistant opens the index and wires retrieval and generation around it
func newAssistant(cfg *config.Config, l *log.Logger) (*assistant, error) {
	client, err := llm.NewOpenAIClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing LLM client: %w", err)
	}

	db, index, err := openIndex(cfg)
	if err != nil {
		return nil, err
	}

	retriever, err := chat.NewVectorRetriever(index, client, client.EmbeddingModel(), cfg.TopK)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &assistant{
		db:        db,
		index:     index,
		retriever: retriever,
		service:   chat.NewService(retriever, client, l),
	}, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime formats a time for display
func formatTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	} else if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	} else if diff < 7*24*time.Hour {
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%dd ago", days)
	}
	return t.Format("2006-01-02")
}

// containsString checks if a slice contains a string
func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

// singleLine collapses whitespace runs for table cells
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
