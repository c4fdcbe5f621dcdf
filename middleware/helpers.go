package middleware

import (
	"context"

	"github.com/Dosada05/tt-championship/logger"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// WithLogger stores a request-scoped logger in ctx.
func WithLogger(ctx context.Context, log *logger.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, log)
}

// LoggerFromContext returns the request logger, or a no-op logger when the
// request did not pass through RequestLogger.
func LoggerFromContext(ctx context.Context) *logger.Logger {
	if log, ok := ctx.Value(loggerContextKey).(*logger.Logger); ok && log != nil {
		return log
	}
	return logger.Nop()
}
