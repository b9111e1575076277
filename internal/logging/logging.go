// Package for logging utilities

package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type ctxKey struct{}

// Appends a slog attribute to the context. Attributes accumulate and are
// emitted with every record logged through a ContextHandler.
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	if attrs, ok := parent.Value(ctxKey{}).([]slog.Attr); ok {
		attrs = append(attrs[:len(attrs):len(attrs)], attr)
		return context.WithValue(parent, ctxKey{}, attrs)
	}
	return context.WithValue(parent, ctxKey{}, []slog.Attr{attr})
}

// slog handler that emits attributes stored in the context
type ContextHandler struct {
	slog.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	if attrs, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		record.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, record)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}

// Returns a handler that discards every record
func NullLogger() slog.Handler {
	return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)})
}

// Constructs the default logger used by the server and CLI
func New() *slog.Logger {
	return slog.New(&ContextHandler{
		Handler: slog.NewTextHandler(
			os.Stderr,
			&slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
	})
}
