package session

import (
	"context"
	"sync"
	"time"
)

// Store persists token pairs by session id. Sessions have a server-side TTL
// as a safety net; the cookie itself already dies with the browser tab.
type Store interface {
	Get(ctx context.Context, id string) (TokenPair, bool, error)
	Set(ctx context.Context, id string, tp TokenPair) error
	Delete(ctx context.Context, id string) error
}

// SessionTTL caps how long an abandoned session survives server-side.
const SessionTTL = 12 * time.Hour

type memoryEntry struct {
	pair      TokenPair
	expiresAt time.Time
}

// MemoryStore is the default single-process store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (TokenPair, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return TokenPair{}, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return TokenPair{}, false, nil
	}
	return entry.pair, true, nil
}

func (s *MemoryStore) Set(_ context.Context, id string, tp TokenPair) error {
	s.mu.Lock()
	s.entries[id] = memoryEntry{pair: tp, expiresAt: time.Now().Add(SessionTTL)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}
