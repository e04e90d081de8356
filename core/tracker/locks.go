package tracker

import "sync"

// chatLocks hands out one mutex per conversation so that events for the same
// chat are handled one at a time while unrelated chats never contend. The
// outer mutex only guards the map itself.
type chatLocks struct {
	mu   sync.Mutex
	held map[int64]*chatLock
}

type chatLock struct {
	mu   sync.Mutex
	refs int
}

func newChatLocks() *chatLocks {
	return &chatLocks{held: make(map[int64]*chatLock)}
}

// lock acquires the per-chat mutex and returns its release function. Entries
// are dropped from the map once the last waiter releases.
func (l *chatLocks) lock(chatID int64) (unlock func()) {
	l.mu.Lock()
	e, ok := l.held[chatID]
	if !ok {
		e = &chatLock{}
		l.held[chatID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.held, chatID)
		}
		l.mu.Unlock()
	}
}
