package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestContextHandlerEmitsContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&ContextHandler{Handler: slog.NewTextHandler(&buf, nil)})

	ctx := AppendCtx(context.Background(), slog.String("method", "GET"))
	ctx = AppendCtx(ctx, slog.String("path", "/api/songs"))
	logger.InfoContext(ctx, "Request received")

	out := buf.String()
	if !strings.Contains(out, "method=GET") {
		t.Errorf("expected method attr in output, got: %s", out)
	}
	if !strings.Contains(out, "path=/api/songs") {
		t.Errorf("expected path attr in output, got: %s", out)
	}
}

func TestAppendCtxDoesNotLeakAcrossBranches(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&ContextHandler{Handler: slog.NewTextHandler(&buf, nil)})

	base := AppendCtx(context.Background(), slog.String("request_id", "a"))
	branch := AppendCtx(base, slog.String("step", "one"))
	_ = branch

	logger.InfoContext(base, "base only")
	if strings.Contains(buf.String(), "step=one") {
		t.Errorf("attr from branch context leaked into base: %s", buf.String())
	}
}

func TestNullLoggerDiscards(t *testing.T) {
	logger := slog.New(NullLogger())
	// Must not panic, must not emit
	logger.Error("dropped")
}
