package tracker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// mapStore is a minimal in-package store so service tests stay free of the
// store package. Put calls are counted to observe write behaviour.
type mapStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
	puts     int
}

func newMapStore() *mapStore {
	return &mapStore{sessions: make(map[int64]Session)}
}

func (s *mapStore) GetOrCreate(_ context.Context, chatID int64) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[chatID]; ok {
		return sess, nil
	}
	return Session{Phase: PhaseStart}, nil
}

func (s *mapStore) Put(_ context.Context, chatID int64, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = sess
	s.puts++
	return nil
}

func newTestService(clock *fakeClock) (*Service, *mapStore) {
	st := newMapStore()
	svc := NewService(NewMachine(""), st, WithClock(clock.Now))
	return svc, st
}

func TestServiceFullScenario(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(base)
	svc, _ := newTestService(clock)
	const chat = int64(100)

	reply, err := svc.Command(ctx, chat, CmdHelp)
	require.NoError(t, err)
	assert.Equal(t, "These commands are supported:", reply.Text)

	reply, err = svc.Text(ctx, chat, "8")
	require.NoError(t, err)
	assert.Equal(t, "Setup done.", reply.Text)
	assert.Equal(t, []string{"/work", "/status"}, reply.Actions)

	reply, err = svc.Command(ctx, chat, CmdWork)
	require.NoError(t, err)
	assert.Equal(t, "Started work at 2026-08-29 09:00:00 UTC", reply.Text)

	clock.Advance(5 * time.Second)
	reply, err = svc.Command(ctx, chat, CmdStatus)
	require.NoError(t, err)
	assert.Equal(t, "Done 00:00:05 of 08:00:00", reply.Text)

	clock.Advance(5 * time.Second)
	reply, err = svc.Command(ctx, chat, CmdRest)
	require.NoError(t, err)
	assert.Equal(t, "Work done. Done 00:00:10 of 08:00:00", reply.Text)

	// A second stint accrues on top of the first.
	reply, err = svc.Command(ctx, chat, CmdWork)
	require.NoError(t, err)
	clock.Advance(50 * time.Second)
	reply, err = svc.Command(ctx, chat, CmdRest)
	require.NoError(t, err)
	assert.Equal(t, "Work done. Done 00:01:00 of 08:00:00", reply.Text)
}

func TestServiceStatusDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(base)
	svc, st := newTestService(clock)
	const chat = int64(7)

	_, err := svc.Command(ctx, chat, CmdHelp)
	require.NoError(t, err)
	_, err = svc.Text(ctx, chat, "8")
	require.NoError(t, err)
	_, err = svc.Command(ctx, chat, CmdWork)
	require.NoError(t, err)

	putsBefore := st.puts
	clock.Advance(time.Minute)
	for i := 0; i < 3; i++ {
		_, err = svc.Command(ctx, chat, CmdStatus)
		require.NoError(t, err)
	}
	assert.Equal(t, putsBefore, st.puts, "status must not persist anything")
}

func TestServiceUnknownInputDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(base)
	svc, st := newTestService(clock)

	reply, err := svc.Text(ctx, 1, "hello")
	require.NoError(t, err)
	assert.Equal(t, "Unable to handle the message. Type /help to see the usage.", reply.Text)
	assert.Zero(t, st.puts)
}

func TestServiceIsolatesChats(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(base)
	svc, _ := newTestService(clock)

	_, err := svc.Command(ctx, 1, CmdHelp)
	require.NoError(t, err)
	_, err = svc.Text(ctx, 1, "8")
	require.NoError(t, err)

	// Chat 2 never ran /help and is still at the start.
	reply, err := svc.Command(ctx, 2, CmdWork)
	require.NoError(t, err)
	assert.Equal(t, "Unable to handle the message. Type /help to see the usage.", reply.Text)

	reply, err = svc.Command(ctx, 1, CmdWork)
	require.NoError(t, err)
	assert.Equal(t, "Started work at 2026-08-29 09:00:00 UTC", reply.Text)
}

func TestServiceActiveSessionsRequiresCounter(t *testing.T) {
	clock := newFakeClock(base)
	svc, _ := newTestService(clock)

	_, err := svc.ActiveSessions(context.Background())
	assert.ErrorIs(t, err, ErrNoCounter)
}

func TestServiceConcurrentSameChat(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(base)
	svc, st := newTestService(clock)
	const chat = int64(42)

	_, err := svc.Command(ctx, chat, CmdHelp)
	require.NoError(t, err)
	_, err = svc.Text(ctx, chat, "8")
	require.NoError(t, err)

	// Concurrent work/rest pairs must leave the session in a coherent phase
	// rather than a torn read-modify-write.
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Command(ctx, chat, CmdWork)
			_, _ = svc.Command(ctx, chat, CmdRest)
		}()
	}
	wg.Wait()

	sess, err := st.GetOrCreate(ctx, chat)
	require.NoError(t, err)
	assert.Contains(t, []Phase{PhaseResting, PhaseWorking}, sess.Phase)
	assert.Equal(t, 8*time.Hour, sess.Target)
}
