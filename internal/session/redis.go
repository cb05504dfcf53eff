package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists quiz sessions as JSON snapshots with a TTL, so a
// half-finished quiz survives a process restart and dies on its own when the
// taker walks away.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Put(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.client.Set(ctx, key(s.TakerID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, takerID int64) (*Session, bool, error) {
	raw, err := r.client.Get(ctx, key(takerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to load session: %w", err)
	}
	s := &Session{}
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, false, fmt.Errorf("failed to decode session: %w", err)
	}
	return s, true, nil
}

func (r *RedisStore) Delete(ctx context.Context, takerID int64) error {
	if err := r.client.Del(ctx, key(takerID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func key(takerID int64) string {
	return "quiz:session:" + strconv.FormatInt(takerID, 10)
}
