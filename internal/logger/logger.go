// ABOUTME: Leveled logger shared by the scraper, builder, and commands
// ABOUTME: Wraps charmbracelet/log with level parsing from flags and env
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New creates a logger writing to w at the named level (debug, info, warn,
// error). Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "menuchat",
	})
	l.SetLevel(ParseLevel(level))
	return l
}

// Default logs to stderr at the given level
func Default(level string) *log.Logger {
	return New(os.Stderr, level)
}

// Discard returns a logger that drops everything (for tests)
func Discard() *log.Logger {
	return New(io.Discard, "error")
}

// ParseLevel maps a level name to a log.Level
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
