// Package logging builds the structured loggers used by the planner commands.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Silent is above every standard level, so nothing is emitted.
const Silent = slog.Level(100)

// NewLogger creates a text logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewFileLogger creates a logger that appends to the file at path.
// The caller closes the returned file.
func NewFileLogger(path string, level slog.Level) (*slog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(f, level), f, nil
}

// NewDiscardLogger creates a logger that drops everything. Useful in tests.
func NewDiscardLogger() *slog.Logger {
	return NewLogger(io.Discard, Silent)
}

// LevelFromString converts debug, info, warn, error or quiet (case-insensitive)
// to a slog.Level. Unrecognised strings map to info.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "quiet", "off", "none":
		return Silent
	default:
		return slog.LevelInfo
	}
}
