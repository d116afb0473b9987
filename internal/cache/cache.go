package cache

import (
	"container/list"
	"fmt"
	"iter"

	"github.com/rs/zerolog"
)

// DefaultCapacity is the capacity used by DefaultConfig.
const DefaultCapacity = 120

// Config controls cache capacity and eviction hooks.
//
//   - Capacity must be > 0; New rejects anything else
//   - OnEvict, if set, is called for capacity evictions only (not Remove or Purge)
//   - Logger, if set, receives a debug event per eviction
type Config[K comparable, V any] struct {
	Capacity int
	OnEvict  func(key K, value V)
	Logger   *zerolog.Logger
}

// DefaultConfig returns a Config with DefaultCapacity and no hooks.
func DefaultConfig[K comparable, V any]() Config[K, V] {
	return Config[K, V]{Capacity: DefaultCapacity}
}

// Entry is a key/value pair as stored in the cache.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Cache is a fixed-capacity key–value cache with LRU eviction.
//
// A map gives O(1) key lookup, and a doubly-linked list maintains recency ordering.
// Both are only ever mutated together, so every key in items has exactly one node
// in order and vice versa.
//
// Cache is not safe for concurrent use. Wrap it in Synced, or keep one
// instance per goroutine.
type Cache[K comparable, V any] struct {
	capacity int
	items    map[K]*list.Element
	order    *list.List // Front = least recently used (LRU), Back = most recently used (MRU)

	hits      uint64
	misses    uint64
	evictions uint64

	onEvict func(K, V)
	log     zerolog.Logger
}

// New constructs an empty cache.
//
// It returns an error wrapping ErrInvalidCapacity if cfg.Capacity <= 0.
func New[K comparable, V any](cfg Config[K, V]) (*Cache[K, V], error) {
	if cfg.Capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, cfg.Capacity)
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &Cache[K, V]{
		capacity: cfg.Capacity,
		items:    make(map[K]*list.Element, cfg.Capacity),
		order:    list.New(),
		onEvict:  cfg.OnEvict,
		log:      log,
	}, nil
}

// NewWithCapacity is shorthand for New with only Capacity set.
func NewWithCapacity[K comparable, V any](capacity int) (*Cache[K, V], error) {
	return New(Config[K, V]{Capacity: capacity})
}

// Get returns the value for key and marks it most recently used.
//
// Exactly one of the hit/miss counters is incremented per call. A stored zero
// value is still a hit; presence is reported by the bool, never by the value.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	el, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}

	c.hits++
	c.order.MoveToBack(el)
	return el.Value.(*Entry[K, V]).Value, true
}

// Fetch is the strict form of Get: a miss is reported as an error wrapping
// ErrNotFound. Statistics and recency are updated exactly as Get does.
func (c *Cache[K, V]) Fetch(key K) (V, error) {
	v, ok := c.Get(key)
	if !ok {
		return v, fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	return v, nil
}

// Peek returns the value for key without updating recency or statistics.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	if el, ok := c.items[key]; ok {
		return el.Value.(*Entry[K, V]).Value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is resident. It does not touch recency or statistics.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.items[key]
	return ok
}

// Set writes or overwrites key and marks it most recently used.
//
// Overwriting an existing key never evicts. Inserting a new key into a full
// cache first evicts the least recently used entry, which is returned with
// ok=true. Len changes by exactly 0 or +1 per call.
func (c *Cache[K, V]) Set(key K, value V) (evicted Entry[K, V], ok bool) {
	if el, found := c.items[key]; found {
		el.Value.(*Entry[K, V]).Value = value
		c.order.MoveToBack(el)
		return evicted, false
	}

	if c.order.Len() >= c.capacity {
		evicted, ok = c.evictOldest()
	}

	c.items[key] = c.order.PushBack(&Entry[K, V]{Key: key, Value: value})
	return evicted, ok
}

// Remove deletes key. It returns an error wrapping ErrNotFound if key is absent.
func (c *Cache[K, V]) Remove(key K) error {
	el, ok := c.items[key]
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	c.removeElement(el)
	return nil
}

// Oldest returns the entry that would be evicted next, without touching it.
func (c *Cache[K, V]) Oldest() (Entry[K, V], bool) {
	el := c.order.Front()
	if el == nil {
		return Entry[K, V]{}, false
	}
	return *el.Value.(*Entry[K, V]), true
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int { return c.order.Len() }

// Cap returns the configured capacity.
func (c *Cache[K, V]) Cap() int { return c.capacity }

// Purge drops every entry. Statistics are kept; OnEvict is not called.
func (c *Cache[K, V]) Purge() {
	clear(c.items)
	c.order.Init()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Capacity:  c.capacity,
		Size:      c.order.Len(),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// ResetStats zeroes the hit, miss and eviction counters.
func (c *Cache[K, V]) ResetStats() {
	c.hits, c.misses, c.evictions = 0, 0, 0
}

// String returns a one-line summary of capacity, size, hits and misses.
func (c *Cache[K, V]) String() string {
	return c.Stats().String()
}

// Keys yields resident keys from least to most recently used.
//
// The order is captured when iteration begins; each call returns a fresh sequence.
func (c *Cache[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, e := range c.snapshot() {
			if !yield(e.Key) {
				return
			}
		}
	}
}

// Values yields resident values from least to most recently used.
func (c *Cache[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, e := range c.snapshot() {
			if !yield(e.Value) {
				return
			}
		}
	}
}

// All yields resident key/value pairs from least to most recently used.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range c.snapshot() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Equal reports whether a and b hold the same key/value pairs.
// Capacity, statistics and recency order are not compared.
func Equal[K, V comparable](a, b *Cache[K, V]) bool {
	return EqualFunc(a, b, func(x, y V) bool { return x == y })
}

// EqualFunc is like Equal but compares values with eq.
func EqualFunc[K comparable, V any](a, b *Cache[K, V], eq func(V, V) bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.items) != len(b.items) {
		return false
	}
	for key, el := range a.items {
		other, ok := b.items[key]
		if !ok {
			return false
		}
		if !eq(el.Value.(*Entry[K, V]).Value, other.Value.(*Entry[K, V]).Value) {
			return false
		}
	}
	return true
}

func (c *Cache[K, V]) snapshot() []Entry[K, V] {
	out := make([]Entry[K, V], 0, c.order.Len())
	for el := c.order.Front(); el != nil; el = el.Next() {
		out = append(out, *el.Value.(*Entry[K, V]))
	}
	return out
}

func (c *Cache[K, V]) evictOldest() (Entry[K, V], bool) {
	el := c.order.Front()
	if el == nil {
		return Entry[K, V]{}, false
	}

	e := *el.Value.(*Entry[K, V])
	c.removeElement(el)
	c.evictions++

	c.log.Debug().
		Interface("key", e.Key).
		Int("size", c.order.Len()).
		Int("capacity", c.capacity).
		Msg("evicted least recently used entry")

	if c.onEvict != nil {
		c.onEvict(e.Key, e.Value)
	}
	return e, true
}

func (c *Cache[K, V]) removeElement(el *list.Element) {
	delete(c.items, el.Value.(*Entry[K, V]).Key)
	c.order.Remove(el)
}
