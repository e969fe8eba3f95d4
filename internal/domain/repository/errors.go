// Package repository contains the repository interfaces and related errors.
package repository

import "errors"

// Repository errors define common error conditions across all repositories.
// These errors are used to communicate specific failure conditions
// from the data access layer to the application layer.

var (
	// ErrSessionNotFound is returned when a form session does not exist
	// or has expired.
	ErrSessionNotFound = errors.New("form session not found")

	// ErrDuplicateSession is returned when creating a session whose ID
	// is already stored.
	ErrDuplicateSession = errors.New("form session already exists")

	// ErrOptimisticLock is returned when an update fails due to
	// a version mismatch (concurrent modification).
	ErrOptimisticLock = errors.New("optimistic lock conflict: session was modified concurrently")

	// ErrConnectionFailed is returned when the backing store is unreachable.
	ErrConnectionFailed = errors.New("session store connection failed")

	// ErrInvalidInput is returned when repository receives invalid input.
	ErrInvalidInput = errors.New("invalid input provided")
)

// IsNotFoundError checks if the error is a not found error.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error indicates a session was not found
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

// IsConflictError checks if the error is a write conflict.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error indicates a duplicate or a lost update
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDuplicateSession) ||
		errors.Is(err, ErrOptimisticLock)
}
