// Package logging sets up the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init creates and sets the package-level default slog logger on stderr.
// When machineOutput is true the report on stdout is JSON or msgpack, so logs
// are JSON too; otherwise they are text for human readability.
func Init(machineOutput bool, level slog.Level) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, machineOutput, level)))
}

// NewHandler returns the handler Init would install, writing to w.
func NewHandler(w io.Writer, machineOutput bool, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if machineOutput {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
