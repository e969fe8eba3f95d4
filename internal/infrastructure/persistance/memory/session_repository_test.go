package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/refripanel/quote-go/internal/domain/entity"
	"github.com/refripanel/quote-go/internal/domain/quote"
	"github.com/refripanel/quote-go/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newRepo(ttl time.Duration) (*SessionRepository, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return NewSessionRepository(ttl).WithClock(clock.Now), clock
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	repo, clock := newRepo(time.Minute)
	ctx := context.Background()
	s := entity.NewFormSession(quote.ProductCabin, clock.Now())

	require.NoError(t, repo.Create(ctx, s))
	assert.ErrorIs(t, repo.Create(ctx, s), repository.ErrDuplicateSession)

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	got.Cabin.Dimensions.Width = 9
	again, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, again.Cabin.Dimensions.Width, "store must hand out copies")
}

func TestSessionRepository_GetMissing(t *testing.T) {
	repo, _ := newRepo(time.Minute)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.True(t, repository.IsNotFoundError(err))
}

func TestSessionRepository_UpdateOptimisticLock(t *testing.T) {
	repo, clock := newRepo(time.Minute)
	ctx := context.Background()
	s := entity.NewFormSession(quote.ProductEPSRoof, clock.Now())
	require.NoError(t, repo.Create(ctx, s))

	first, _ := repo.GetByID(ctx, s.ID)
	second, _ := repo.GetByID(ctx, s.ID)

	require.NoError(t, first.Apply([]entity.Change{{Field: "quantity", Value: "3"}}, clock.Now()))
	require.NoError(t, repo.Update(ctx, first))

	require.NoError(t, second.Apply([]entity.Change{{Field: "quantity", Value: "7"}}, clock.Now()))
	err := repo.Update(ctx, second)
	assert.ErrorIs(t, err, repository.ErrOptimisticLock)
	assert.True(t, repository.IsConflictError(err))

	stored, _ := repo.GetByID(ctx, s.ID)
	assert.Equal(t, 3, stored.EPSRoof.Quantity)
	assert.Equal(t, 2, stored.Version)
}

func TestSessionRepository_Expiry(t *testing.T) {
	repo, clock := newRepo(time.Minute)
	ctx := context.Background()
	s := entity.NewFormSession(quote.ProductPUR, clock.Now())
	require.NoError(t, repo.Create(ctx, s))

	clock.Advance(30 * time.Second)
	_, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)

	clock.Advance(31 * time.Second)
	_, err = repo.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	assert.Equal(t, 1, repo.Len())
	assert.Equal(t, 1, repo.Sweep())
	assert.Equal(t, 0, repo.Len())
}

func TestSessionRepository_UpdateRefreshesTTL(t *testing.T) {
	repo, clock := newRepo(time.Minute)
	ctx := context.Background()
	s := entity.NewFormSession(quote.ProductDoor, clock.Now())
	require.NoError(t, repo.Create(ctx, s))

	clock.Advance(50 * time.Second)
	require.NoError(t, s.Apply(nil, clock.Now()))
	require.NoError(t, repo.Update(ctx, s))

	clock.Advance(50 * time.Second)
	_, err := repo.GetByID(ctx, s.ID)
	assert.NoError(t, err)
}

func TestSessionRepository_Delete(t *testing.T) {
	repo, clock := newRepo(0)
	ctx := context.Background()
	s := entity.NewFormSession(quote.ProductCabin, clock.Now())
	require.NoError(t, repo.Create(ctx, s))

	require.NoError(t, repo.Delete(ctx, s.ID))
	require.NoError(t, repo.Delete(ctx, s.ID))
	_, err := repo.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestSessionRepository_RunJanitorStops(t *testing.T) {
	repo, _ := newRepo(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		repo.RunJanitor(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestSessionRepository_Ping(t *testing.T) {
	repo := NewSessionRepository(time.Minute)
	assert.NoError(t, repo.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, repo.Ping(ctx), context.Canceled)
}
