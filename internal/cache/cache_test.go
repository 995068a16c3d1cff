package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-dcf/internal/model"
)

func TestKey_StableAndSensitive(t *testing.T) {
	a := model.Input{P0: 100, RentMonthly0: 1, Years: 5}
	b := a
	assert.Equal(t, Key(a), Key(b))
	assert.Len(t, Key(a), 64)

	b.Vacancy = 0.01
	assert.NotEqual(t, Key(a), Key(b))
}

func TestMemoryStore_SetGet(t *testing.T) {
	s := NewMemoryStore(time.Hour, 0)
	defer s.Close()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	e := &Entry{ID: "a1", Result: &model.Result{NPVAsset: 42}}
	require.NoError(t, s.Set(ctx, e))

	got, err := s.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, 42.0, got.Result.NPVAsset)
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore(time.Minute, 0)
	defer s.Close()
	ctx := context.Background()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	require.NoError(t, s.Set(ctx, &Entry{ID: "a1"}))

	now = now.Add(2 * time.Minute)
	_, err := s.Get(ctx, "a1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, s.Len())

	s.sweep()
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStore_CloseIsIdempotent(t *testing.T) {
	s := NewMemoryStore(time.Minute, time.Millisecond)
	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
