package session

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRedisStore(client, time.Minute)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr, store := newTestRedis(t)
	ctx := context.Background()

	testID := uuid.New()
	s := New(42, 7, testID, true, time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC))
	s.Answers[3] = 2
	s.NextQuestion = 4

	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !mr.Exists("quiz:session:42") {
		t.Fatal("expected redis key to be set")
	}

	got, ok, err := store.Get(ctx, 42)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.TestID != testID || got.NextQuestion != 4 || got.Answers[3] != 2 || !got.IsRetake {
		t.Fatalf("unexpected session %+v", got)
	}
}

func TestRedisStoreExpiry(t *testing.T) {
	mr, store := newTestRedis(t)
	ctx := context.Background()

	_ = store.Put(ctx, New(42, 7, uuid.New(), false, time.Now()))
	mr.FastForward(2 * time.Minute)

	if _, ok, _ := store.Get(ctx, 42); ok {
		t.Fatal("expected session to expire with the key TTL")
	}
}

func TestRedisStoreDelete(t *testing.T) {
	mr, store := newTestRedis(t)
	ctx := context.Background()

	_ = store.Put(ctx, New(42, 7, uuid.New(), false, time.Now()))
	if err := store.Delete(ctx, 42); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("quiz:session:42") {
		t.Fatal("expected redis key removed")
	}
}
