package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/tempobot/tempo/core/tracker"
)

const redisKeyPrefix = "tempo:session:"

// Redis stores sessions as JSON blobs keyed by conversation id. Entries have
// no TTL; a session exists until /reset or explicit deletion.
type Redis struct {
	cli redis.Cmdable
}

// NewRedis wraps an established redis client.
func NewRedis(cli redis.Cmdable) *Redis {
	return &Redis{cli: cli}
}

func redisKey(chatID int64) string {
	return redisKeyPrefix + strconv.FormatInt(chatID, 10)
}

// GetOrCreate loads the session blob, mapping a missing key onto a fresh
// Start session.
func (r *Redis) GetOrCreate(ctx context.Context, chatID int64) (tracker.Session, error) {
	raw, err := r.cli.Get(ctx, redisKey(chatID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return tracker.Session{Phase: tracker.PhaseStart}, nil
		}
		return tracker.Session{}, fmt.Errorf("redis get session: %w", err)
	}
	var s tracker.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return tracker.Session{}, fmt.Errorf("redis decode session: %w", err)
	}
	return s, nil
}

// Put overwrites the session blob.
func (r *Redis) Put(ctx context.Context, chatID int64, s tracker.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("redis encode session: %w", err)
	}
	if err := r.cli.Set(ctx, redisKey(chatID), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis put session: %w", err)
	}
	return nil
}

// Count scans the session key prefix. Diagnostics only; a full SCAN is fine
// at this cardinality.
func (r *Redis) Count(ctx context.Context) (int, error) {
	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := r.cli.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("redis scan sessions: %w", err)
		}
		total += len(keys)
		if next == 0 {
			return total, nil
		}
		cursor = next
	}
}
