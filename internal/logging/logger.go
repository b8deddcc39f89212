package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the process-wide logger. format is "json" (production, one
// object per line on stdout) or "text" (colored, for local development).
func Setup(format, level string) slog.Handler {
	handler := NewHandler(os.Stdout, format, ParseLevel(level))
	slog.SetDefault(slog.New(handler))
	return handler
}

// NewHandler builds the console handler without installing it.
func NewHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	if format == "text" {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

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
