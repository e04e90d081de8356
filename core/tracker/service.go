package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tempobot/tempo/core/logger"
	"log/slog"
)

// ErrNoCounter is returned by ActiveSessions when the configured store does
// not report session counts.
var ErrNoCounter = errors.New("tracker: store does not count sessions")

// Service drives the dialogue machine against a session store. Handling of a
// single event is atomic per conversation: the session is read, transitioned
// and written back under a per-chat lock, with the clock read exactly once.
type Service struct {
	machine *Machine
	store   Store
	locks   *chatLocks
	clock   func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces the wall clock, used by tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService wires a machine to a store.
func NewService(machine *Machine, store Store, opts ...Option) *Service {
	s := &Service{
		machine: machine,
		store:   store,
		locks:   newChatLocks(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Command handles a slash-command event for the conversation.
func (s *Service) Command(ctx context.Context, chatID int64, cmd Command) (Reply, error) {
	return s.handle(ctx, chatID, func(sess Session, now time.Time) (Session, Reply) {
		return s.machine.Command(sess, cmd, now)
	})
}

// Text handles a free-text event for the conversation.
func (s *Service) Text(ctx context.Context, chatID int64, text string) (Reply, error) {
	return s.handle(ctx, chatID, func(sess Session, now time.Time) (Session, Reply) {
		return s.machine.Text(sess, text, now)
	})
}

// ActiveSessions reports how many sessions the store currently holds.
func (s *Service) ActiveSessions(ctx context.Context) (int, error) {
	counter, ok := s.store.(Counter)
	if !ok {
		return 0, ErrNoCounter
	}
	return counter.Count(ctx)
}

func (s *Service) handle(ctx context.Context, chatID int64, apply func(Session, time.Time) (Session, Reply)) (Reply, error) {
	unlock := s.locks.lock(chatID)
	defer unlock()

	// One clock read per event, before any transition arithmetic.
	now := s.clock()

	sess, err := s.store.GetOrCreate(ctx, chatID)
	if err != nil {
		return Reply{}, fmt.Errorf("tracker: load session: %w", err)
	}
	sess = sess.normalized()

	next, reply := apply(sess, now)
	if next != sess {
		if err := s.store.Put(ctx, chatID, next); err != nil {
			return Reply{}, fmt.Errorf("tracker: store session: %w", err)
		}
		logger.Debug(ctx, "tracker", "session.transition",
			slog.Int64("chat_id", chatID),
			slog.String("from", string(sess.Phase)),
			slog.String("to", string(next.Phase)),
			slog.Duration("accumulated", next.Accumulated),
		)
	}
	return reply, nil
}
