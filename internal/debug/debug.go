// Package debug provides statement-level debug logging using log/slog.
package debug

import (
	"log/slog"
	"os"
	"sync"
	"time"
)

var (
	logger  *slog.Logger
	enabled bool
	mu      sync.RWMutex
)

// Init initializes the package logger. When enable is true, statements are
// logged to os.Stderr; otherwise logging is silently discarded.
func Init(enable bool) {
	mu.Lock()
	defer mu.Unlock()

	enabled = enable

	level := slog.LevelDebug
	if !enable {
		// Higher than any level actually logged.
		level = slog.LevelError + 1
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
}

// Enabled reports whether debug logging is on.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Logger returns the package logger, initializing a disabled one on first use.
func Logger() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l == nil {
		Init(false)
		mu.RLock()
		l = logger
		mu.RUnlock()
	}
	return l
}

// Statement logs one executed statement with its bindings and duration.
// A nil l falls back to the package logger.
func Statement(l *slog.Logger, op, sql string, bindings []any, d time.Duration, err error) {
	if l == nil {
		l = Logger()
	}
	attrs := []any{
		slog.String("sql", sql),
		slog.Any("bindings", bindings),
		slog.Duration("duration", d),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		l.Error(op, attrs...)
		return
	}
	l.Debug(op, attrs...)
}
