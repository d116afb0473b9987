package cache

import "errors"

var (
	// ErrInvalidCapacity is returned by New when the configured capacity is not positive.
	ErrInvalidCapacity = errors.New("cache: capacity must be positive")

	// ErrNotFound is returned by Fetch and Remove when the key is not resident.
	ErrNotFound = errors.New("cache: key not found")

	// ErrInvalidShardCount is returned by NewSharded when the shard count is
	// not in [1, capacity].
	ErrInvalidShardCount = errors.New("cache: shard count must be positive and not exceed capacity")
)
