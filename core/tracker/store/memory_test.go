package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempobot/tempo/core/tracker"
)

func TestMemoryGetOrCreateIsLazy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	s, err := m.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, tracker.Session{Phase: tracker.PhaseStart}, s)

	// Reading must not materialize an entry.
	n, err := m.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemoryPutRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	want := tracker.Session{
		Phase:       tracker.PhaseWorking,
		Target:      8 * time.Hour,
		Accumulated: 90 * time.Minute,
		StartedAt:   time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
	}

	require.NoError(t, m.Put(ctx, 7, want))

	got, err := m.GetOrCreate(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	n, err := m.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
