package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	s := New(42, 7, uuid.New(), false, time.Now())
	s.Answers[0] = 3
	s.NextQuestion = 1

	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := store.Get(ctx, 42)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.NextQuestion != 1 || got.Answers[0] != 3 || got.OwnerID != 7 {
		t.Fatalf("unexpected session %+v", got)
	}
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	s := New(42, 7, uuid.New(), false, time.Now())
	s.Answers[0] = 3
	s.NextQuestion = 1
	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("put: %v", err)
	}

	// An abandoned in-flight update must not leak into the store: a caller
	// that advances its fetched session and then fails before Put leaves the
	// stored state untouched.
	got, _, _ := store.Get(ctx, 42)
	got.NextQuestion = 15
	got.Answers[14] = 2

	again, ok, err := store.Get(ctx, 42)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if again.NextQuestion != 1 {
		t.Fatalf("NextQuestion = %d, want 1", again.NextQuestion)
	}
	if _, leaked := again.Answers[14]; leaked {
		t.Fatal("answer mutation leaked into stored session")
	}

	// The original pointer handed to Put is equally detached.
	s.NextQuestion = 9
	final, _, _ := store.Get(ctx, 42)
	if final.NextQuestion != 1 {
		t.Fatalf("NextQuestion = %d, want 1", final.NextQuestion)
	}
}

func TestMemoryStoreMissingTaker(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	_, ok, err := store.Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected no session")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	// Negative TTL makes every entry born expired.
	store := NewMemoryStore(-time.Second)
	ctx := context.Background()

	_ = store.Put(ctx, New(42, 7, uuid.New(), false, time.Now()))

	if _, ok, _ := store.Get(ctx, 42); ok {
		t.Fatal("expected expired session to be dropped")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	_ = store.Put(ctx, New(42, 7, uuid.New(), true, time.Now()))
	if err := store.Delete(ctx, 42); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, 42); ok {
		t.Fatal("expected session gone after delete")
	}
}
