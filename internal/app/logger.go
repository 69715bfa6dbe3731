package app

import (
	"io"
	"log/slog"
)

// NewLogger returns a configured slog.Logger based on configuration.
func NewLogger(cfg *Config, out io.Writer) *slog.Logger {
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{AddSource: true}))
	}
	return slog.New(slog.NewTextHandler(out, nil))
}
