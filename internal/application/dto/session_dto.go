package dto

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/refripanel/quote-go/internal/domain/entity"
	"github.com/refripanel/quote-go/internal/domain/quote"
)

// ErrNoChanges is returned when a change request carries no edits.
var ErrNoChanges = errors.New("at least one change is required")

// OpenSessionRequest opens a form session.
type OpenSessionRequest struct {
	Product string `json:"product"`

	product quote.Product
}

// Bind implements render.Binder.
func (req *OpenSessionRequest) Bind(r *http.Request) error {
	p, err := quote.ParseProduct(req.Product)
	if err != nil {
		return err
	}
	req.product = p
	return nil
}

// ProductLine returns the parsed product.
func (req *OpenSessionRequest) ProductLine() quote.Product { return req.product }

// ApplyChangesRequest carries form edits in the order they were made.
type ApplyChangesRequest struct {
	Changes []entity.Change `json:"changes"`
}

// Bind implements render.Binder.
func (req *ApplyChangesRequest) Bind(r *http.Request) error {
	if len(req.Changes) == 0 {
		return ErrNoChanges
	}
	return nil
}

// SessionResponse is a form session with its current breakdown.
type SessionResponse struct {
	ID        uuid.UUID     `json:"id"`
	Product   quote.Product `json:"product"`
	Version   int           `json:"version"`
	Input     any           `json:"input"`
	Quote     QuoteResponse `json:"quote"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewSessionResponse maps a session and its breakdown.
func NewSessionResponse(s *entity.FormSession, q quote.Quote) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		Product:   s.Product,
		Version:   s.Version,
		Input:     s.Input(),
		Quote:     NewQuoteResponse(q),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
