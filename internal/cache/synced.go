package cache

import "sync"

// Synced serializes access to a Cache behind one RWMutex.
//
// The map and the recency list must change as a pair, so a single lock guards
// both. Get and Fetch reorder the list and therefore take the write lock; only
// pure queries run under the read lock.
//
// OnEvict runs while the lock is held and must not call back into the Synced.
type Synced[K comparable, V any] struct {
	mu sync.RWMutex
	c  *Cache[K, V]
}

// NewSynced constructs a Cache from cfg and wraps it.
func NewSynced[K comparable, V any](cfg Config[K, V]) (*Synced[K, V], error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return &Synced[K, V]{c: c}, nil
}

// Get returns the value for key and marks it most recently used.
func (s *Synced[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Get(key)
}

// Fetch is like Get but reports a miss as an error wrapping ErrNotFound.
func (s *Synced[K, V]) Fetch(key K) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Fetch(key)
}

// Set writes or overwrites key, returning the evicted entry if one was dropped.
func (s *Synced[K, V]) Set(key K, value V) (Entry[K, V], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Set(key, value)
}

// Remove deletes key, returning an error wrapping ErrNotFound if absent.
func (s *Synced[K, V]) Remove(key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.Remove(key)
}

// Purge drops every entry. Statistics are kept.
func (s *Synced[K, V]) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Purge()
}

// Peek returns the value for key without touching recency or statistics.
func (s *Synced[K, V]) Peek(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c.Peek(key)
}

// Contains reports whether key is resident.
func (s *Synced[K, V]) Contains(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c.Contains(key)
}

// Len returns the number of resident entries.
func (s *Synced[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c.Len()
}

// Cap returns the configured capacity. It never changes, so no lock is taken.
func (s *Synced[K, V]) Cap() int { return s.c.Cap() }

// Stats returns a snapshot of the cache counters.
func (s *Synced[K, V]) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c.Stats()
}

// Entries returns resident pairs from least to most recently used.
//
// Unlike Cache.All this is a copied slice, since a lazy sequence would
// outlive the lock.
func (s *Synced[K, V]) Entries() []Entry[K, V] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.c.snapshot()
}

// Keys returns resident keys from least to most recently used.
func (s *Synced[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]K, 0, s.c.Len())
	for k := range s.c.Keys() {
		out = append(out, k)
	}
	return out
}

// String returns the diagnostics line for the wrapped cache.
func (s *Synced[K, V]) String() string {
	return s.Stats().String()
}
