package form

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refripanel/quote-go/internal/domain/catalog"
	"github.com/refripanel/quote-go/internal/domain/entity"
	"github.com/refripanel/quote-go/internal/domain/quote"
	"github.com/refripanel/quote-go/internal/domain/repository"
	"github.com/refripanel/quote-go/internal/infrastructure/logging"
	"github.com/refripanel/quote-go/internal/infrastructure/persistance/memory"
	"github.com/refripanel/quote-go/pkg/logger"
)

var fixedNow = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	cat, err := catalog.New(catalog.DefaultPrices())
	require.NoError(t, err)
	repo := memory.NewSessionRepository(time.Hour)
	return NewService(repo, cat, logging.Nop()).WithClock(func() time.Time { return fixedNow })
}

func TestService_OpenUsesDefaults(t *testing.T) {
	svc := newService(t)

	state, err := svc.Open(context.Background(), quote.ProductCabin)
	require.NoError(t, err)

	assert.Equal(t, 1, state.Session.Version)
	assert.Equal(t, fixedNow, state.Session.CreatedAt)
	assert.Equal(t, 4130.0, state.Quote.Summary().Total.Float64())
}

func TestService_ApplySequence(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	opened, err := svc.Open(ctx, quote.ProductCabin)
	require.NoError(t, err)
	id := opened.Session.ID

	// Each change is visible in the next breakdown.
	steps := []struct {
		change entity.Change
		total  float64
	}{
		{entity.Change{Field: "length", Value: "4"}, 5947.2},
		{entity.Change{Field: "material", Value: "PUR"}, 7198},
		{entity.Change{Field: "length", Value: "2"}, 5310},
	}
	for i, step := range steps {
		state, err := svc.Apply(ctx, id, []entity.Change{step.change})
		require.NoError(t, err)
		assert.Equal(t, i+2, state.Session.Version)
		assert.InDelta(t, step.total, state.Quote.Summary().Total.Float64(), 1e-9)
	}

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.InDelta(t, 5310.0, got.Quote.Summary().Total.Float64(), 1e-9)
}

func TestService_ApplyRejectsUnknownOption(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	opened, err := svc.Open(ctx, quote.ProductCabin)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, opened.Session.ID, []entity.Change{{Field: "location", Value: "marte"}})
	assert.ErrorIs(t, err, catalog.ErrUnknownOption)

	got, err := svc.Get(ctx, opened.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Session.Version)
}

func TestService_LogsCarrySessionID(t *testing.T) {
	var buf bytes.Buffer
	cat, err := catalog.New(catalog.DefaultPrices())
	require.NoError(t, err)
	log := logging.New(logger.MustNew(logger.Config{Level: "warn", Output: &buf}))
	svc := NewService(memory.NewSessionRepository(time.Hour), cat, log)

	ctx := logger.WithRequestID(context.Background(), "req-1")
	opened, err := svc.Open(ctx, quote.ProductCabin)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, opened.Session.ID, []entity.Change{{Field: "colour", Value: "red"}})
	require.ErrorIs(t, err, entity.ErrUnknownField)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Form change rejected", entry["msg"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, opened.Session.ID.String(), entry["session_id"])
}

// staleRepo loses every update to a concurrent writer.
type staleRepo struct {
	repository.SessionRepository
}

func (staleRepo) Update(context.Context, *entity.FormSession) error {
	return repository.ErrOptimisticLock
}

func TestService_ApplyConcurrentEdit(t *testing.T) {
	cat, err := catalog.New(catalog.DefaultPrices())
	require.NoError(t, err)
	svc := NewService(staleRepo{memory.NewSessionRepository(time.Hour)}, cat, logging.Nop())
	ctx := context.Background()

	opened, err := svc.Open(ctx, quote.ProductCabin)
	require.NoError(t, err)

	_, err = svc.Apply(ctx, opened.Session.ID, []entity.Change{{Field: "length", Value: "4"}})
	assert.ErrorIs(t, err, repository.ErrOptimisticLock)
	assert.True(t, repository.IsConflictError(err))
}

func TestService_MissingSession(t *testing.T) {
	svc := newService(t)

	_, err := svc.Apply(context.Background(), uuid.New(), nil)
	assert.True(t, repository.IsNotFoundError(err))
}

func TestService_SubmitBlocksIncompleteForm(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	opened, err := svc.Open(ctx, quote.ProductCabin)
	require.NoError(t, err)
	id := opened.Session.ID

	_, err = svc.Apply(ctx, id, []entity.Change{{Field: "width", Value: "0.3"}, {Field: "height", Value: ""}})
	require.NoError(t, err)

	_, err = svc.Submit(ctx, id)
	require.ErrorIs(t, err, ErrIncompleteForm)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"dimensions.width", "dimensions.height"}, fields)

	_, err = svc.Apply(ctx, id, []entity.Change{{Field: "width", Value: "1"}, {Field: "height", Value: "2"}})
	require.NoError(t, err)
	state, err := svc.Submit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, quote.TierFlat, state.Quote.(quote.CabinQuote).Tier)
}

func TestService_Discard(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	opened, err := svc.Open(ctx, quote.ProductDoor)
	require.NoError(t, err)

	require.NoError(t, svc.Discard(ctx, opened.Session.ID))
	_, err = svc.Get(ctx, opened.Session.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestService_QuoteStateless(t *testing.T) {
	svc := newService(t)

	q, err := svc.Quote(quote.EPSRoofInput{Quantity: 10})
	require.NoError(t, err)
	assert.Equal(t, 1026.6, q.Summary().Total.Float64())

	_, err = svc.Quote("nope")
	assert.ErrorIs(t, err, quote.ErrUnknownProduct)
}

func TestValidator_Rules(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		input  any
		fields []string
	}{
		{"roof ok", quote.EPSRoofInput{Quantity: 1}, nil},
		{"roof zero", quote.EPSRoofInput{}, []string{"quantity"}},
		{"wall short", quote.EPSWallInput{Thickness: catalog.EPSThickness100, Length: 0.4}, []string{"length"}},
		{"pur no thickness", quote.PURInput{Quantity: 1}, []string{"thickness"}},
		{"vaiven three leaves", quote.DoorInput{Type: catalog.DoorVaiven, Width: 1, Height: 2, Leaves: 3}, []string{"leaves"}},
		{"vaiven no leaves", quote.DoorInput{Type: catalog.DoorVaiven, Width: 1, Height: 2}, []string{"leaves"}},
		{"vaiven two leaves", quote.DoorInput{Type: catalog.DoorVaiven, Width: 1, Height: 2, Leaves: 2}, nil},
		{"batiente ignores no leaves", quote.DoorInput{Type: catalog.DoorBatiente, Width: 1, Height: 2}, nil},
		{"batiente ignores three leaves", quote.DoorInput{Type: catalog.DoorBatiente, Width: 1, Height: 2, Leaves: 3}, nil},
		{"corredera ignores three leaves", quote.DoorInput{Type: catalog.DoorCorredera, Width: 1, Height: 2, Leaves: 3}, nil},
		{"door too narrow", quote.DoorInput{Type: catalog.DoorBatiente, Width: 0.4, Height: 2}, []string{"width"}},
		{"door defaults", quote.DefaultDoorInput(), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			got := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				got = append(got, f.Field)
				assert.NotEmpty(t, f.Message())
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}
