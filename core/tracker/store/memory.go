package store

import (
	"context"
	"sync"

	"github.com/tempobot/tempo/core/tracker"
)

// Memory keeps sessions in a process-local map. This is the default backend:
// state lives for the process lifetime and is lost on restart.
type Memory struct {
	mu       sync.RWMutex
	sessions map[int64]tracker.Session
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[int64]tracker.Session)}
}

// GetOrCreate returns the stored session or a fresh Start session. Creation
// is implicit; nothing is written until the first Put.
func (m *Memory) GetOrCreate(_ context.Context, chatID int64) (tracker.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[chatID]; ok {
		return s, nil
	}
	return tracker.Session{Phase: tracker.PhaseStart}, nil
}

// Put replaces the session for the conversation.
func (m *Memory) Put(_ context.Context, chatID int64, s tracker.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[chatID] = s
	return nil
}

// Count reports how many conversations have stored state.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions), nil
}
