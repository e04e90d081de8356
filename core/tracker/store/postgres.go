package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tempobot/tempo/core/tracker"
)

// Postgres persists one row per conversation in the sessions table, letting
// tracked time survive process restarts.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres wraps an established connection pool.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

type sessionRow struct {
	ChatID        int64        `db:"chat_id"`
	Phase         string       `db:"phase"`
	TargetNS      int64        `db:"target_ns"`
	AccumulatedNS int64        `db:"accumulated_ns"`
	StartedAt     sql.NullTime `db:"started_at"`
}

func (r sessionRow) session() tracker.Session {
	s := tracker.Session{
		Phase:       tracker.Phase(r.Phase),
		Target:      time.Duration(r.TargetNS),
		Accumulated: time.Duration(r.AccumulatedNS),
	}
	if r.StartedAt.Valid {
		s.StartedAt = r.StartedAt.Time
	}
	return s
}

func newSessionRow(chatID int64, s tracker.Session) sessionRow {
	r := sessionRow{
		ChatID:        chatID,
		Phase:         string(s.Phase),
		TargetNS:      int64(s.Target),
		AccumulatedNS: int64(s.Accumulated),
	}
	if !s.StartedAt.IsZero() {
		r.StartedAt = sql.NullTime{Time: s.StartedAt.UTC(), Valid: true}
	}
	return r
}

// GetOrCreate loads the row, mapping a missing one onto a fresh Start
// session without inserting anything.
func (p *Postgres) GetOrCreate(ctx context.Context, chatID int64) (tracker.Session, error) {
	var row sessionRow
	err := p.db.GetContext(ctx, &row,
		`SELECT chat_id, phase, target_ns, accumulated_ns, started_at
		   FROM sessions WHERE chat_id = $1`, chatID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return tracker.Session{Phase: tracker.PhaseStart}, nil
		}
		return tracker.Session{}, fmt.Errorf("select session: %w", err)
	}
	return row.session(), nil
}

// Put upserts the row for the conversation.
func (p *Postgres) Put(ctx context.Context, chatID int64, s tracker.Session) error {
	row := newSessionRow(chatID, s)
	_, err := p.db.NamedExecContext(ctx,
		`INSERT INTO sessions (chat_id, phase, target_ns, accumulated_ns, started_at, updated_at)
		 VALUES (:chat_id, :phase, :target_ns, :accumulated_ns, :started_at, now())
		 ON CONFLICT (chat_id) DO UPDATE SET
		   phase = EXCLUDED.phase,
		   target_ns = EXCLUDED.target_ns,
		   accumulated_ns = EXCLUDED.accumulated_ns,
		   started_at = EXCLUDED.started_at,
		   updated_at = now()`, row)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// Count reports stored conversations.
func (p *Postgres) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.db.GetContext(ctx, &n, `SELECT count(*) FROM sessions`); err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}
