// Package logging provides the structured logger used by the commands and the gRPC server.
//
// The repository and entity packages never log; they return errors and let
// the caller decide how to report them.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/asakaida/edurecords/internal/infrastructure/config"
)

// Logger wraps slog.Logger with service-wide default fields
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing to stdout
func New(cfg config.LogConfig) *Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter creates a Logger writing to w
// Format "text" selects the human-readable handler, anything else JSON.
func NewWithWriter(cfg config.LogConfig, w io.Writer) *Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", "edurecords"),
	})

	return &Logger{Logger: slog.New(handler)}
}

// parseLevel converts a string log level to slog.Level, defaulting to info
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// With returns a new Logger with additional default attributes
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Default creates a logger for use before configuration is loaded
func Default() *Logger {
	return New(config.LogConfig{Level: "info", Format: "text"})
}
