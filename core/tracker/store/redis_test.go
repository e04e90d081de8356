package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempobot/tempo/core/tracker"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	cli := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cli.Close() })
	return NewRedis(cli)
}

func TestRedisMissingKeyYieldsStart(t *testing.T) {
	r := newTestRedis(t)

	s, err := r.GetOrCreate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, tracker.Session{Phase: tracker.PhaseStart}, s)
}

func TestRedisPutRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := newTestRedis(t)
	want := tracker.Session{
		Phase:       tracker.PhaseWorking,
		Target:      8 * time.Hour,
		Accumulated: 3661 * time.Second,
		StartedAt:   time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC),
	}

	require.NoError(t, r.Put(ctx, 42, want))

	got, err := r.GetOrCreate(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, want.Phase, got.Phase)
	assert.Equal(t, want.Target, got.Target)
	assert.Equal(t, want.Accumulated, got.Accumulated)
	assert.True(t, want.StartedAt.Equal(got.StartedAt))
}

func TestRedisCount(t *testing.T) {
	ctx := context.Background()
	r := newTestRedis(t)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	for chat := int64(1); chat <= 3; chat++ {
		require.NoError(t, r.Put(ctx, chat, tracker.Session{Phase: tracker.PhaseResting, Target: time.Hour}))
	}

	n, err = r.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
