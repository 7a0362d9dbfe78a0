package logging

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDFromContext(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty request ID, got %q", got)
	}
	ctx := contextWithRequestID(context.Background(), "req-abc")
	if got := RequestIDFromContext(ctx); got != "req-abc" {
		t.Fatalf("expected req-abc, got %q", got)
	}
}

func TestContextWithRequestIDEmpty(t *testing.T) {
	original := context.Background()
	if ctx := contextWithRequestID(original, ""); ctx != original {
		t.Fatal("expected same context for empty request ID")
	}
}

func TestLogErrorAppendsErrorField(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)
	ctx := contextWithLogger(context.Background(), logger)

	err := errors.New("boom")
	LogError(ctx, "failed", err, zap.String("foo", "bar"))

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Message != "failed" {
		t.Fatalf("unexpected log message: %s", entry.Message)
	}
	if entry.Level != zapcore.ErrorLevel {
		t.Fatalf("unexpected log level: %s", entry.Level)
	}

	fields := map[string]zap.Field{}
	for _, f := range entry.Context {
		fields[f.Key] = f
	}

	if f, ok := fields["foo"]; !ok || f.String != "bar" {
		t.Fatalf("expected foo field, got %+v", fields)
	}
	if f, ok := fields["error"]; !ok || f.Type != zapcore.ErrorType {
		t.Fatalf("expected error field, got %+v", fields)
	}
}

func TestLogErrorNilError(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)
	ctx := contextWithLogger(context.Background(), logger)

	LogError(ctx, "no error", nil, zap.String("key", "value"))

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	for _, f := range entries[0].Context {
		if f.Key == "error" {
			t.Fatal("did not expect error field when err is nil")
		}
	}
}

func TestLogInfoWritesEntry(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)
	ctx := contextWithLogger(context.Background(), logger)

	LogInfo(ctx, "info message", zap.String("foo", "bar"))

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Message != "info message" || entry.Level != zapcore.InfoLevel {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if len(entry.Context) != 1 || entry.Context[0].Key != "foo" || entry.Context[0].String != "bar" {
		t.Fatalf("unexpected context fields: %+v", entry.Context)
	}
}

func TestLogWarnWritesEntry(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)
	ctx := contextWithLogger(context.Background(), logger)

	LogWarn(ctx, "warn message")

	entries := recorded.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("unexpected log level: %s", entries[0].Level)
	}
}

func TestLogFatalAppendsErrorField(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core, zap.WithFatalHook(zapcore.WriteThenPanic))
	ctx := contextWithLogger(context.Background(), logger)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic triggered by fatal hook")
		}

		entries := recorded.All()
		if len(entries) != 1 {
			t.Fatalf("expected 1 log entry, got %d", len(entries))
		}
		entry := entries[0]
		if entry.Level != zapcore.FatalLevel {
			t.Fatalf("unexpected log level: %s", entry.Level)
		}

		found := false
		for _, f := range entry.Context {
			if f.Key == "error" && f.Type == zapcore.ErrorType {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected error field, got %+v", entry.Context)
		}
	}()

	LogFatal(ctx, "fatal failure", errors.New("boom"))
}

func TestLoggerFromContextNilContext(t *testing.T) {
	var nilCtx context.Context //nolint:revive // testing nil context handling
	if LoggerFromContext(nilCtx) == nil {
		t.Fatal("expected non-nil logger for nil context")
	}
}

func TestLoggerFromContextNilLoggerInContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxLoggerKey{}, (*zap.Logger)(nil))
	if LoggerFromContext(ctx) == nil {
		t.Fatal("expected non-nil logger when context has nil logger")
	}
}

func TestContextWithLoggerNilContext(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	var nilCtx context.Context //nolint:revive // testing nil context handling
	ctx := contextWithLogger(nilCtx, logger)
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}

	LoggerFromContext(ctx).Info("test")
	if len(recorded.All()) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(recorded.All()))
	}
}
