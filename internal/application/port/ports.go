// Package port contains the port interfaces (driven ports) for the application layer.
// Ports define the interfaces that the application layer requires from external
// services like logging.
//
// In Hexagonal Architecture (ports & adapters):
//   - Ports are interfaces that define what the application needs.
//   - Adapters are implementations of these interfaces
//   - this enables loose coupling and easy testing/swapping of implementations.
package port

import (
	"context"
	"time"
)

// Logger defines the interface for structured logging.
// The zap-backed adapter lives in infrastructure/logging.
//
// Example usage:
//
//	log.WithContext(ctx).Info("Form recomputed", "version", version)
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})

	// WithContext return a logger with context information (request ID, session ID).
	WithContext(ctx context.Context) Logger
}

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time
