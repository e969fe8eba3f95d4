package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refripanel/quote-go/pkg/logger"
)

func TestAdapter_WithContextCarriesIDs(t *testing.T) {
	var buf bytes.Buffer
	log := New(logger.MustNew(logger.Config{Level: "debug", Output: &buf})).Named("form")

	ctx := logger.WithSessionID(logger.WithRequestID(context.Background(), "req-7"), "sess-7")
	log.WithContext(ctx).Warn("Form change rejected", "field", "width")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "form", entry["logger"])
	assert.Equal(t, "req-7", entry["request_id"])
	assert.Equal(t, "sess-7", entry["session_id"])
	assert.Equal(t, "width", entry["field"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().WithContext(context.Background()).Error("dropped")
	})
}
