// Package logging builds the slog loggers used across the API server, the
// analyze CLI and the retention worker, and carries loggers and request IDs
// through context.
package logging

import (
	"context"
	"log/slog"
	"os"

	"newstrust/internal/handler/http/requestid"
)

// envLevel maps LOG_LEVEL to a slog level. Anything but "debug", "warn"
// or "error" means info.
func envLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
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

func handlerOptions() *slog.HandlerOptions {
	level := envLevel()
	return &slog.HandlerOptions{
		Level: level,
		// Source locations are only worth the noise when the level is
		// already tightened to warnings and errors.
		AddSource: level >= slog.LevelWarn,
	}
}

// NewLogger returns a JSON logger writing to stdout, leveled by LOG_LEVEL.
func NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, handlerOptions()))
}

// NewTextLogger is the human-readable variant for local development.
func NewTextLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, handlerOptions()))
}

// WithRequestID attaches the request ID from ctx so every entry of one
// analysis request can be grepped together. Without an ID the logger is
// returned unchanged.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}

// WithFields attaches a map of structured fields.
func WithFields(logger *slog.Logger, fields map[string]any) *slog.Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return logger.With(args...)
}

type contextKey struct{}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
