package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"guidepedia/internal/handler/http/requestid"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output should be valid JSON")
	return entry
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf})

	logger.Info("hello", slog.Int64("article_id", 7))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.EqualValues(t, 7, entry["article_id"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Format: "text", Output: &buf})

	logger.Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Output: &buf})

	logger.Info("this should not appear")
	logger.Warn("this should appear")

	assert.NotContains(t, buf.String(), "this should not appear")
	assert.Contains(t, buf.String(), "this should appear")
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Output: &buf})
	ctx := requestid.WithRequestID(context.Background(), "550e8400-e29b-41d4-a716-446655440000")

	WithRequestID(ctx, base).Info("test message")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", entry["request_id"])
}

func TestWithRequestID_Missing(t *testing.T) {
	base := New(Options{Output: &bytes.Buffer{}})
	assert.Same(t, base, WithRequestID(context.Background(), base))
}

func TestWithTrace(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	var buf bytes.Buffer
	WithTrace(ctx, New(Options{Output: &buf})).Info("traced")

	entry := decodeLine(t, &buf)
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["span_id"])
}

func TestWithTrace_NoSpan(t *testing.T) {
	base := New(Options{Output: &bytes.Buffer{}})
	assert.Same(t, base, WithTrace(context.Background(), base))
}

func TestFromContext(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		wantDflt bool
	}{
		{"with logger in context", WithLogger(context.Background(), New(Options{Output: &bytes.Buffer{}})), false},
		{"without logger in context", context.Background(), true},
		{"with invalid value in context", context.WithValue(context.Background(), loggerContextKey, "not a logger"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromContext(tt.ctx)
			require.NotNil(t, got)
			if tt.wantDflt {
				assert.Equal(t, slog.Default(), got)
			} else {
				assert.NotEqual(t, slog.Default(), got)
			}
		})
	}
}

func TestWithLogger_RoundTrip(t *testing.T) {
	logger := New(Options{Output: &bytes.Buffer{}})
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
	assert.True(t, HasLogger(ctx))
	assert.False(t, HasLogger(context.Background()))
}
