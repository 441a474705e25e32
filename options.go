package simydb

import "log/slog"

// config holds connection configuration assembled from options.
type config struct {
	foreignKeys bool
	debug       bool
	logger      *slog.Logger
}

func defaultConfig() *config {
	return &config{
		foreignKeys: true,
	}
}

// Option configures a connection at Open time.
type Option func(*config)

// WithDebug enables statement-level debug logging. Every executed statement
// is logged with its SQL text, bindings and duration.
func WithDebug() Option {
	return func(c *config) {
		c.debug = true
	}
}

// WithLogger routes debug logging to the given logger instead of the
// package default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithoutForeignKeys opens the database without foreign-key enforcement.
// Enforcement is on by default.
func WithoutForeignKeys() Option {
	return func(c *config) {
		c.foreignKeys = false
	}
}
