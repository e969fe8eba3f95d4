// Package form implements the reactive quote forms: one session per open
// form, change events applied in order, and a breakdown recomputed from
// scratch after every change.
package form

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/refripanel/quote-go/internal/application/port"
	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/entity"
	"github.com/refripanel/quote-go/internal/domain/quote"
	"github.com/refripanel/quote-go/internal/domain/repository"
	"github.com/refripanel/quote-go/pkg/logger"
)

// State is a session together with the breakdown of its current selections.
type State struct {
	Session *entity.FormSession
	Quote   quote.Quote
}

// Service drives form sessions.
type Service struct {
	repo      repository.SessionRepository
	catalog   *catalog.Catalog
	validator *Validator
	log       port.Logger
	now       port.Clock
}

// NewService creates a form service.
//
// Parameters:
//   - repo: where sessions live between requests
//   - cat: the price catalog
//   - log: application logger
//
// Returns:
//   - *Service: the service, using the wall clock
func NewService(repo repository.SessionRepository, cat *catalog.Catalog, log port.Logger) *Service {
	return &Service{
		repo:      repo,
		catalog:   cat,
		validator: NewValidator(),
		log:       log,
		now:       time.Now,
	}
}

// WithClock replaces the service's time source.
func (s *Service) WithClock(now port.Clock) *Service {
	s.now = now
	return s
}

// Catalog returns the catalog the service prices with.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Open starts a form for a product with its default selections.
func (s *Service) Open(ctx context.Context, product quote.Product) (State, error) {
	session := entity.NewFormSession(product, s.now())
	ctx = scope(ctx, session.ID)
	if err := s.repo.Create(ctx, session); err != nil {
		s.log.WithContext(ctx).Error("Failed to store form session", "product", product, "error", err)
		return State{}, fmt.Errorf("open form: %w", err)
	}

	s.log.WithContext(ctx).Debug("Form session opened", "product", product)
	return s.evaluate(session), nil
}

// Get returns the session and a freshly computed breakdown.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (State, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return State{}, fmt.Errorf("get form: %w", err)
	}
	return s.evaluate(session), nil
}

// Apply applies change events in order and recomputes. Either every change
// is stored or none is.
//
// Parameters:
//   - ctx: request context
//   - id: the session ID
//   - changes: the edits, in the order the user made them
//
// Returns:
//   - State: the updated session and its breakdown
//   - error: entity.ErrUnknownField, catalog.ErrUnknownOption, or a repository error
func (s *Service) Apply(ctx context.Context, id uuid.UUID, changes []entity.Change) (State, error) {
	ctx = scope(ctx, id)
	log := s.log.WithContext(ctx)

	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return State{}, fmt.Errorf("apply changes: %w", err)
	}

	if err := session.Apply(changes, s.now()); err != nil {
		log.Warn("Form change rejected", "error", err)
		return State{}, err
	}

	if err := s.repo.Update(ctx, session); err != nil {
		if repository.IsConflictError(err) {
			log.Warn("Concurrent form edit rejected", "version", session.Version)
		}
		return State{}, fmt.Errorf("apply changes: %w", err)
	}

	state := s.evaluate(session)
	log.Debug("Form recomputed",
		"version", session.Version,
		"total", state.Quote.Summary().Total.String(),
	)
	return state, nil
}

// Submit is the "request quote" action. It fails with ErrIncompleteForm
// while any field is below its minimum.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (State, error) {
	ctx = scope(ctx, id)
	state, err := s.Get(ctx, id)
	if err != nil {
		return State{}, err
	}
	if err := s.ValidateInput(state.Session.Input()); err != nil {
		s.log.WithContext(ctx).Warn("Form submitted incomplete", "error", err)
		return State{}, err
	}
	return state, nil
}

// Discard drops a session, like reloading the page.
func (s *Service) Discard(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("discard form: %w", err)
	}
	return nil
}

// CheckStore pings the session store.
func (s *Service) CheckStore(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// ValidateInput checks a product input against the submission rules.
func (s *Service) ValidateInput(input any) error {
	return s.validator.Validate(input)
}

// Quote prices an input without a session.
func (s *Service) Quote(input any) (quote.Quote, error) {
	switch in := input.(type) {
	case quote.CabinInput:
		return quote.Cabin(s.catalog, in), nil
	case quote.EPSRoofInput:
		return quote.EPSRoof(s.catalog, in), nil
	case quote.EPSWallInput:
		return quote.EPSWall(s.catalog, in), nil
	case quote.PURInput:
		return quote.PUR(s.catalog, in), nil
	case quote.DoorInput:
		return quote.Door(s.catalog, in), nil
	default:
		return nil, fmt.Errorf("%w: %T", quote.ErrUnknownProduct, input)
	}
}

// scope tags ctx with the session ID so repository calls and log entries
// made under it can be correlated.
func scope(ctx context.Context, id uuid.UUID) context.Context {
	return logger.WithSessionID(ctx, id.String())
}

func (s *Service) evaluate(session *entity.FormSession) State {
	return State{Session: session, Quote: session.Evaluate(s.catalog)}
}
