package tracker

import "context"

// Store persists sessions keyed by conversation id. Implementations do not
// need to serialize access per key; the Service holds a per-conversation
// lock around every read-transition-write cycle.
type Store interface {
	// GetOrCreate returns the stored session, or a fresh Start session when
	// the conversation has none yet.
	GetOrCreate(ctx context.Context, chatID int64) (Session, error)
	// Put replaces the stored session for the conversation.
	Put(ctx context.Context, chatID int64, s Session) error
}

// Counter is optionally implemented by stores that can report how many
// sessions they hold. Used by diagnostics only.
type Counter interface {
	Count(ctx context.Context) (int, error)
}
