// Package repository contains the repository interfaces (ports) for data access.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/refripanel/quote-go/internal/domain/entity"
)

// SessionRepository defines the interface for form session storage.
// Sessions are ephemeral: implementations expire them after a TTL and
// never keep computed quotes.
//
// Example usage:
//
//	repo := memory.NewSessionRepository(30 * time.Minute)
//	session, err := repo.GetByID(ctx, sessionID)
type SessionRepository interface {
	// Create stores a new session.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - session: The session to store
	//
	// Returns:
	//   - error: ErrDuplicateSession if the ID is taken
	Create(ctx context.Context, session *entity.FormSession) error

	// GetByID retrieves a session by its unique identifier.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - id: The session's UUID
	//
	// Returns:
	//   - *entity.FormSession: The retrieved session
	//   - error: ErrSessionNotFound if the session doesn't exist or expired
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FormSession, error)

	// Update replaces a session whose stored version is session.Version-1.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - session: The session after its changes were applied
	//
	// Returns:
	//   - error: ErrOptimisticLock on version mismatch, ErrSessionNotFound if gone
	Update(ctx context.Context, session *entity.FormSession) error

	// Delete removes a session. Deleting a missing session is not an error.
	//
	// Parameters:
	//   - ctx: context for cancellation and deadlines
	//   - id: The session's UUID
	//
	// Returns:
	//   - error: any error encountered during deletion
	Delete(ctx context.Context, id uuid.UUID) error

	// Ping reports whether the store can serve requests.
	Ping(ctx context.Context) error
}
