package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is the textual log level taken from configuration.
type Level string

// New creates a preconfigured slog.Logger writing JSON to stdout.
func New(level Level) *slog.Logger {
	return newWithWriter(os.Stdout, level)
}

func newWithWriter(w io.Writer, level Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler)
}

func parseLevel(level Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(string(level))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
