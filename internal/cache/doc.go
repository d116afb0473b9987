// Package cache implements a fixed-capacity, in-memory LRU cache.
//
// Goals for this package:
//   - Make the core data structures explicit (map + doubly-linked list)
//   - Provide O(1) Get/Set/Remove/Contains via map index + list pointers
//   - Track hit/miss statistics per cache instance
//   - Keep the core Cache single-threaded; Synced and Sharded add locking on top
package cache
