package redis

import (
	"bytes"
	"context"
	"encoding/json"
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
	"github.com/refripanel/quote-go/pkg/logger"
)

func TestBuildSessionKey(t *testing.T) {
	id := uuid.MustParse("6f1c7a54-3d0e-4b8a-9c4e-1f2a3b4c5d6e")
	assert.Equal(t, "quote:session:6f1c7a54-3d0e-4b8a-9c4e-1f2a3b4c5d6e", buildSessionKey(id))
}

func TestSessionCodec(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := entity.NewFormSession(quote.ProductCabin, now)
	require.NoError(t, s.Apply([]entity.Change{
		{Field: "material", Value: "PUR"},
		{Field: "door", Value: "corredera"},
		{Field: "motor", Value: "3"},
	}, now.Add(time.Minute)))

	data, err := encodeSession(s)
	require.NoError(t, err)

	got, err := decodeSession(data)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.Version, got.Version)
	assert.Equal(t, catalog.MaterialPUR, got.Cabin.Material)
	assert.Equal(t, catalog.DoorCorredera, got.Cabin.Door)
	assert.Equal(t, catalog.Motor3HP, got.Cabin.Motor)
	assert.True(t, s.UpdatedAt.Equal(got.UpdatedAt))
}

func TestDecodeSession_Garbage(t *testing.T) {
	_, err := decodeSession([]byte("{not json"))
	assert.Error(t, err)
}

func TestConnect_CancelledContext(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logger.MustNew(logger.Config{Level: "info", Output: &buf}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Connect(ctx, Options{
		Addr:           "127.0.0.1:1",
		ConnectTimeout: time.Second,
	}, log)

	assert.ErrorIs(t, err, repository.ErrConnectionFailed)

	var entry map[string]any
	line, _, _ := bytes.Cut(buf.Bytes(), []byte("\n"))
	require.NoError(t, json.Unmarshal(line, &entry))
	assert.Equal(t, "Connecting to Redis...", entry["msg"])
	assert.Equal(t, "127.0.0.1:1", entry["addr"])
}

func TestNilSessionRejected(t *testing.T) {
	repo := NewSessionRepository(nil, time.Minute)

	assert.ErrorIs(t, repo.Create(context.Background(), nil), repository.ErrInvalidInput)
	assert.ErrorIs(t, repo.Update(context.Background(), nil), repository.ErrInvalidInput)
	assert.NoError(t, repo.Close())
}
