package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	t.Run("returns nop logger when missing", func(t *testing.T) {
		l := FromContext(context.Background())
		require.NotNil(t, l)
		assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
	})

	t.Run("returns stored logger", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		ctx := WithContext(context.Background(), zap.New(core))

		FromContext(ctx).Info("hello")
		assert.Equal(t, 1, recorded.Len())
	})
}

func TestWithRequestIDAndUserID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx, _ := WithRequestID(context.Background(), base, "req-1")
	ctx, _ = WithUserID(ctx, FromContext(ctx), 7)

	assert.Equal(t, "req-1", GetRequestID(ctx))
	userID, ok := GetUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(7), userID)

	L(ctx).Info("cart listed")

	entries := recorded.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, int64(7), fields["user_id"])
	assert.NotContains(t, fields, "trace_id")
}

func TestFields(t *testing.T) {
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-2")
	assert.Equal(t, []zap.Field{zap.String("request_id", "req-2")}, Fields(ctx))

	ctx, _ = WithUserID(ctx, zap.NewNop(), 9)
	assert.Equal(t, []zap.Field{
		zap.String("request_id", "req-2"),
		zap.Int64("user_id", 9),
	}, Fields(ctx))

	assert.Empty(t, Fields(context.Background()))
}

func TestL_AddsTraceContext(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(WithContext(context.Background(), zap.New(core)), sc)

	assert.Equal(t, traceID.String(), GetTraceID(ctx))

	L(ctx).Info("traced")
	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, traceID.String(), entries[0].ContextMap()["trace_id"])
	assert.Equal(t, spanID.String(), entries[0].ContextMap()["span_id"])
}

func TestGetters_Empty(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	_, ok := GetUserID(ctx)
	assert.False(t, ok)
	assert.Empty(t, GetTraceID(ctx))
}
