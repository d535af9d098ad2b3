package logging

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// New creates a configured application logger.
// It writes to Stderr (to keep Stdout free for tape and trace output).
// It standardizes common keys (e.g., "error" -> "err").
func New(level slog.Level) *slog.Logger {
	return slog.New(textHandler(level))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewFanout creates a logger that writes human-readable text to Stderr
// and structured JSON to jsonOut, typically a log file. Both sinks see
// every record at or above the level.
func NewFanout(level slog.Level, jsonOut io.Writer) *slog.Logger {
	return slog.New(slogmulti.Fanout(
		textHandler(level),
		slog.NewJSONHandler(jsonOut, &slog.HandlerOptions{Level: level}),
	))
}

func textHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	})
}
