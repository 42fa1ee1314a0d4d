package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	ctxlog "github.com/ErlanBelekov/blog-api/internal/log"
)

func newJSONLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(ctxlog.NewContextHandler(slog.NewJSONHandler(buf, nil)))
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	return rec
}

func TestContextHandler_AddsRequestAndUserID(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.WithRequestID(context.Background(), "req-1")
	ctx = ctxlog.WithUserID(ctx, "user-1")

	newJSONLogger(&buf).InfoContext(ctx, "hello")

	rec := decode(t, &buf)
	if rec["request_id"] != "req-1" {
		t.Errorf("request_id = %v", rec["request_id"])
	}
	if rec["user_id"] != "user-1" {
		t.Errorf("user_id = %v", rec["user_id"])
	}
}

func TestContextHandler_NoContextValues(t *testing.T) {
	var buf bytes.Buffer
	newJSONLogger(&buf).With("component", "test").Info("hello")

	rec := decode(t, &buf)
	if _, ok := rec["request_id"]; ok {
		t.Error("unexpected request_id")
	}
	if rec["component"] != "test" {
		t.Errorf("component = %v", rec["component"])
	}
}
