package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	entry     *Entry
	expiresAt time.Time
}

// MemoryStore is an in-process Store with a fixed TTL.
type MemoryStore struct {
	mu    sync.RWMutex
	store map[string]*memoryEntry
	ttl   time.Duration
	now   func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore starts a background sweep every cleanupEvery (0 disables it).
// Call Close to stop the sweep.
func NewMemoryStore(ttl, cleanupEvery time.Duration) *MemoryStore {
	s := &MemoryStore{
		store: make(map[string]*memoryEntry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if cleanupEvery > 0 {
		go s.cleanup(cleanupEvery)
	}
	return s
}

// Get returns the entry if present and not expired.
func (s *MemoryStore) Get(_ context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.store[id]
	if !ok || s.now().After(e.expiresAt) {
		return nil, ErrNotFound
	}
	return e.entry, nil
}

func (s *MemoryStore) Set(_ context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store[e.ID] = &memoryEntry{entry: e, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Len counts stored entries, including expired ones not yet swept.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.store)
}

func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep removes expired entries.
func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.store {
		if now.After(e.expiresAt) {
			delete(s.store, id)
		}
	}
}
