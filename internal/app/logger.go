package app

import (
	"log/slog"
	"os"

	"jamjam-delivery/internal/logx"
)

// NewLogger builds the JSON slog-backed application logger.
func NewLogger() logx.Logger {
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return logx.NewSlogAdapter(base)
}
