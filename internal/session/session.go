package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the in-flight state of one user taking one quiz. It lives only
// for the duration of the conversation (TTL-bound) and is never part of the
// durable quiz or streak data.
type Session struct {
	TakerID      int64       `json:"taker_id"`
	TestID       uuid.UUID   `json:"test_id"`
	OwnerID      int64       `json:"owner_id"`
	NextQuestion int         `json:"next_question"`
	Answers      map[int]int `json:"answers"`
	IsRetake     bool        `json:"is_retake"`
	StartedAt    time.Time   `json:"started_at"`
}

// New starts a fresh session at question 0.
func New(takerID, ownerID int64, testID uuid.UUID, retake bool, now time.Time) *Session {
	return &Session{
		TakerID:   takerID,
		TestID:    testID,
		OwnerID:   ownerID,
		Answers:   make(map[int]int),
		IsRetake:  retake,
		StartedAt: now,
	}
}

// Store keeps at most one active session per taker. Implementations are
// Redis-backed in production and in-memory for single-instance deployments
// and tests.
type Store interface {
	Put(ctx context.Context, s *Session) error
	// Get returns (nil, false, nil) when the taker has no live session.
	Get(ctx context.Context, takerID int64) (*Session, bool, error)
	Delete(ctx context.Context, takerID int64) error
}
