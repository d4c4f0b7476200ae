package store

import (
	"context"
	"sync"
	"time"

	"github.com/zikashaLLP/Rotery-Club-sub000/internal/models"
)

type memoryEntry struct {
	session   *models.CheckoutSession
	expiresAt time.Time
}

// MemoryCheckoutStore keeps checkout sessions in process memory with the
// same TTL semantics as the Redis store. An expired session behaves exactly
// like a missing one.
type MemoryCheckoutStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCheckoutStore creates an in-memory checkout store
func NewMemoryCheckoutStore() *MemoryCheckoutStore {
	return &MemoryCheckoutStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryCheckoutStore) Save(ctx context.Context, cs *models.CheckoutSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Store a copy so callers mutating the session after Save (or after a
	// later Get) cannot change stored state, matching the Redis store.
	s.entries[cs.ID] = memoryEntry{
		session:   cs.Clone(),
		expiresAt: s.now().Add(SessionTTL),
	}
	return nil
}

func (s *MemoryCheckoutStore) Get(ctx context.Context, id string) (*models.CheckoutSession, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	return entry.session.Clone(), nil
}

func (s *MemoryCheckoutStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
