// Package app wires configuration into the masking pipeline for the
// contractmask binaries.
package app

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger returns a text or JSON slog logger. Unknown levels fall back to
// info.
func NewLogger(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
