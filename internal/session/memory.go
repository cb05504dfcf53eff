package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used when no Redis address is
// configured. Expired entries are dropped lazily on access.
type MemoryStore struct {
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[int64]memoryEntry
}

type memoryEntry struct {
	session   *Session
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[int64]memoryEntry),
	}
}

func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.TakerID] = memoryEntry{session: copySession(s), expiresAt: time.Now().Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, takerID int64) (*Session, bool, error) {
	m.mu.RLock()
	entry, ok := m.sessions[takerID]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.sessions, takerID)
		m.mu.Unlock()
		return nil, false, nil
	}
	return copySession(entry.session), true, nil
}

// copySession isolates callers from the stored value, same as the Redis
// store's serialize round trip. Mutations on a fetched session only stick
// through an explicit Put.
func copySession(s *Session) *Session {
	c := *s
	c.Answers = make(map[int]int, len(s.Answers))
	for k, v := range s.Answers {
		c.Answers[k] = v
	}
	return &c
}

func (m *MemoryStore) Delete(_ context.Context, takerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, takerID)
	return nil
}
