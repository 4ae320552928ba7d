// Package testutil provides test utilities for structured logging.
package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(newTestHandler(t))
}

func newTestHandler(t testing.TB) slog.Handler {
	return slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// LogRecorder keeps the messages logged through a recording logger, in
// order, while still writing them to t.Log().
type LogRecorder struct {
	mu       sync.Mutex
	messages []string
}

// Messages returns the recorded messages.
func (r *LogRecorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Logged reports whether msg was logged at least once.
func (r *LogRecorder) Logged(msg string) bool {
	for _, m := range r.Messages() {
		if m == msg {
			return true
		}
	}
	return false
}

// NewRecordingLogger returns a debug-level logger whose messages are kept by
// the returned recorder.
func NewRecordingLogger(t testing.TB) (*slog.Logger, *LogRecorder) {
	t.Helper()
	rec := &LogRecorder{}
	return slog.New(recordingHandler{next: newTestHandler(t), rec: rec}), rec
}

type recordingHandler struct {
	next slog.Handler
	rec  *LogRecorder
}

func (h recordingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h recordingHandler) Handle(ctx context.Context, r slog.Record) error {
	h.rec.mu.Lock()
	h.rec.messages = append(h.rec.messages, r.Message)
	h.rec.mu.Unlock()
	return h.next.Handle(ctx, r)
}

func (h recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return recordingHandler{next: h.next.WithAttrs(attrs), rec: h.rec}
}

func (h recordingHandler) WithGroup(name string) slog.Handler {
	return recordingHandler{next: h.next.WithGroup(name), rec: h.rec}
}
