package cache

import (
	"context"
	"sync"
	"time"
)

const layerMemory = "memory"

// MemoryStore is an in-process Store. Bytes are copied on Set and Get, so a
// caller mutating a slice never changes what the store holds.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	now     Clock
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock replaces time.Now for expiry checks.
func WithClock(now Clock) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a copy of the live entry for key.
// A stale entry is removed and reported as ErrCacheMiss.
func (s *MemoryStore) Get(_ context.Context, key Key) (*Entry, error) {
	k := key.String()

	s.mu.RLock()
	entry, ok := s.entries[k]
	s.mu.RUnlock()

	if !ok {
		CacheMisses.WithLabelValues(layerMemory).Inc()
		return nil, ErrCacheMiss
	}

	if entry.ExpiredAt(s.now()) {
		s.mu.Lock()
		// a concurrent Set may have replaced it
		if cur, ok := s.entries[k]; ok && cur == entry {
			delete(s.entries, k)
		}
		s.mu.Unlock()
		CacheMisses.WithLabelValues(layerMemory).Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.WithLabelValues(layerMemory).Inc()
	return cloneEntry(entry), nil
}

// Set stores a copy of entry.
func (s *MemoryStore) Set(_ context.Context, key Key, entry *Entry) error {
	if entry == nil {
		CacheErrors.WithLabelValues(layerMemory, "set").Inc()
		return ErrInvalidEntry
	}

	s.mu.Lock()
	s.entries[key.String()] = cloneEntry(entry)
	s.mu.Unlock()
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(_ context.Context, key Key) error {
	s.mu.Lock()
	delete(s.entries, key.String())
	s.mu.Unlock()
	return nil
}

// Clear removes every entry.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]*Entry)
	s.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, stale ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func cloneEntry(e *Entry) *Entry {
	out := *e
	if e.Data != nil {
		out.Data = append([]byte(nil), e.Data...)
	}
	return &out
}
