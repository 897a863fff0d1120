// Package testutil provides shared helpers for package tests.
package testutil

import (
	"log/slog"
	"testing"
)

// NewTestLogger returns a debug-level logger that writes through t.Log, so
// output only shows for failing tests or with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return NewTestLoggerWithLevel(t, slog.LevelDebug)
}

// NewTestLoggerWithLevel is NewTestLogger with an explicit minimum level.
func NewTestLoggerWithLevel(t testing.TB, level slog.Level) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(tbWriter{t}, &slog.HandlerOptions{Level: level}))
}

type tbWriter struct {
	t testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
