package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey int

const (
	loggerKey contextKey = iota
	requestKey
)

// requestInfo is what the HTTP layer learns about a request before it reaches
// a service: the request ID first, then the authenticated user.
type requestInfo struct {
	requestID string
	userID    int64
}

func infoFrom(ctx context.Context) requestInfo {
	info, _ := ctx.Value(requestKey).(requestInfo)
	return info
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from context, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID records the request ID and returns the context together with
// a logger tagged with it.
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	info := infoFrom(ctx)
	info.requestID = requestID
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(context.WithValue(ctx, requestKey, info), enriched), enriched
}

// WithUserID records the authenticated user and returns the context together
// with a logger tagged with it.
func WithUserID(ctx context.Context, logger *zap.Logger, userID int64) (context.Context, *zap.Logger) {
	info := infoFrom(ctx)
	info.userID = userID
	enriched := logger.With(zap.Int64("user_id", userID))
	return WithContext(context.WithValue(ctx, requestKey, info), enriched), enriched
}

// GetRequestID returns the request ID, or "" outside a request
func GetRequestID(ctx context.Context) string {
	return infoFrom(ctx).requestID
}

// GetUserID returns the authenticated user ID. ok is false for anonymous
// requests.
func GetUserID(ctx context.Context) (userID int64, ok bool) {
	info := infoFrom(ctx)
	return info.userID, info.userID != 0
}

// GetTraceID returns the trace ID of the span in ctx, or ""
func GetTraceID(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}

// Fields returns request_id, user_id and trace_id for ctx, skipping the ones
// that are not set. Used by loggers that do not receive the request logger,
// such as the GORM logger.
func Fields(ctx context.Context) []zap.Field {
	info := infoFrom(ctx)
	fields := make([]zap.Field, 0, 3)
	if info.requestID != "" {
		fields = append(fields, zap.String("request_id", info.requestID))
	}
	if info.userID != 0 {
		fields = append(fields, zap.Int64("user_id", info.userID))
	}
	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}
	return fields
}

// L returns the context logger with trace_id and span_id added when ctx
// carries a valid span.
//
//	logger.L(ctx).Info("Cart item added", zap.Int64("part_id", id))
func L(ctx context.Context) *zap.Logger {
	l := FromContext(ctx)
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		l = l.With(
			zap.String("trace_id", spanCtx.TraceID().String()),
			zap.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return l
}
