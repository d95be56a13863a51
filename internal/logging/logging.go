// Package logging builds the diagnostic logger.
//
// Diagnostics go to stderr so they never mix with the rendered output on
// stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a text-handler logger writing to out at the given level.
// A nil out falls back to stderr.
func New(level string, out io.Writer) *slog.Logger {
	if out == nil {
		out = os.Stderr
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler)
}

// parseLevel maps a level name to its slog level, defaulting to warn so an
// unconfigured run stays quiet.
func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
