package common

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

// LoggingMiddleware logs every request with its outcome and duration
func LoggingMiddleware() Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		logger := LoggerFromContext(ctx)
		name := RequestName(request)
		start := time.Now()

		response, err := next(ctx, request)

		fields := []zap.Field{
			zap.String("request", name),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			logger.Debug("request failed", append(fields, zap.Error(err))...)
		} else {
			logger.Debug("request handled", fields...)
		}
		return response, err
	}
}
