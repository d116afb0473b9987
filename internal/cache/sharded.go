package cache

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Sharded spreads string keys over several Synced caches to cut lock contention.
//
// Keys are routed by xxhash, and cfg.Capacity is split across shards so the
// shard capacities sum to exactly cfg.Capacity. Recency is tracked per shard,
// so eviction is LRU within a shard, not across the whole Sharded.
type Sharded[V any] struct {
	shards []*Synced[string, V]
}

// NewSharded builds n shards from cfg.
//
// n must be in [1, cfg.Capacity]; otherwise an error wrapping
// ErrInvalidShardCount is returned.
func NewSharded[V any](n int, cfg Config[string, V]) (*Sharded[V], error) {
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, cfg.Capacity)
	}
	if n <= 0 || n > cfg.Capacity {
		return nil, fmt.Errorf("%w: got %d for capacity %d", ErrInvalidShardCount, n, cfg.Capacity)
	}

	per, extra := cfg.Capacity/n, cfg.Capacity%n
	s := &Sharded[V]{shards: make([]*Synced[string, V], n)}
	for i := range s.shards {
		shardCfg := cfg
		shardCfg.Capacity = per
		if i < extra {
			shardCfg.Capacity++
		}
		if cfg.Logger != nil {
			l := cfg.Logger.With().Int("shard", i).Logger()
			shardCfg.Logger = &l
		}

		sc, err := NewSynced(shardCfg)
		if err != nil {
			return nil, err
		}
		s.shards[i] = sc
	}
	return s, nil
}

func (s *Sharded[V]) shardFor(key string) *Synced[string, V] {
	return s.shards[xxhash.Sum64String(key)%uint64(len(s.shards))]
}

// Get returns the value for key and marks it most recently used in its shard.
func (s *Sharded[V]) Get(key string) (V, bool) { return s.shardFor(key).Get(key) }

// Fetch is like Get but reports a miss as an error wrapping ErrNotFound.
func (s *Sharded[V]) Fetch(key string) (V, error) { return s.shardFor(key).Fetch(key) }

// Peek returns the value for key without touching recency or statistics.
func (s *Sharded[V]) Peek(key string) (V, bool) { return s.shardFor(key).Peek(key) }

// Contains reports whether key is resident in its shard.
func (s *Sharded[V]) Contains(key string) bool { return s.shardFor(key).Contains(key) }

// Remove deletes key, returning an error wrapping ErrNotFound if absent.
func (s *Sharded[V]) Remove(key string) error { return s.shardFor(key).Remove(key) }

// ShardCount returns the number of shards.
func (s *Sharded[V]) ShardCount() int { return len(s.shards) }

// Set writes key into its shard, evicting that shard's LRU entry if the shard is full.
func (s *Sharded[V]) Set(key string, value V) (Entry[string, V], bool) {
	return s.shardFor(key).Set(key, value)
}

// Len sums shard sizes. Shards are read one at a time, so under concurrent
// writes the total is not a single consistent snapshot.
func (s *Sharded[V]) Len() int {
	n := 0
	for _, sh := range s.shards {
		n += sh.Len()
	}
	return n
}

// Cap is the summed shard capacity, equal to the configured capacity.
func (s *Sharded[V]) Cap() int {
	n := 0
	for _, sh := range s.shards {
		n += sh.Cap()
	}
	return n
}

// Purge drops every entry in every shard.
func (s *Sharded[V]) Purge() {
	for _, sh := range s.shards {
		sh.Purge()
	}
}

// Stats aggregates counters across all shards.
func (s *Sharded[V]) Stats() Stats {
	var total Stats
	for _, sh := range s.shards {
		total = total.add(sh.Stats())
	}
	return total
}

// String returns the aggregated diagnostics line.
func (s *Sharded[V]) String() string {
	return s.Stats().String()
}
