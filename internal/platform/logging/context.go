package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// Attribute keys added to request loggers.
const (
	KeyRequestID     = "request_id"
	KeyCorrelationID = "correlation_id"
	KeyTraceID       = "trace_id"
)

var defaultLogger = slog.Default()

// Lookup returns the logger stored in ctx, if any.
func Lookup(ctx context.Context) (*slog.Logger, bool) {
	if ctx == nil {
		return nil, false
	}

	logger, ok := ctx.Value(ctxKey{}).(*slog.Logger)

	return logger, ok
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := Lookup(ctx); ok {
		return logger
	}

	return defaultLogger
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithRequestID returns ctx with a logger that tags every line with the
// request id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, KeyRequestID, requestID)
}

// WithCorrelationID is WithRequestID for the caller-supplied correlation id.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return withString(ctx, KeyCorrelationID, correlationID)
}

// WithTraceID is WithRequestID for the OpenTelemetry trace id.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return withString(ctx, KeyTraceID, traceID)
}

func withString(ctx context.Context, key, value string) context.Context {
	return WithContext(ctx, FromContext(ctx).With(slog.String(key, value)))
}

// SetDefault replaces the fallback logger and slog's default.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
	slog.SetDefault(logger)
}
