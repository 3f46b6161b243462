// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Field names shared by every log line.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldUserID    = "user_id"
	FieldError     = "error"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldDuration  = "duration"
)

type Config struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// New builds a logger writing to w.
func New(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Setup builds a stdout logger and installs it as the slog default.
func Setup(cfg Config) *slog.Logger {
	l := New(os.Stdout, cfg)
	slog.SetDefault(l)
	return l
}

// WithComponent returns a child of the default logger tagged with a component name.
func WithComponent(name string) *slog.Logger {
	return slog.Default().With(FieldComponent, name)
}

func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
