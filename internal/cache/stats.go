package cache

import "fmt"

// Stats is a point-in-time snapshot of cache counters.
//
// Hits and Misses only move on Get/Fetch. Evictions counts entries dropped
// to make room for new keys; Remove and Purge do not count.
type Stats struct {
	Capacity  int
	Size      int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRatio returns Hits / (Hits + Misses), or 0 before any lookup.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func (s Stats) add(o Stats) Stats {
	return Stats{
		Capacity:  s.Capacity + o.Capacity,
		Size:      s.Size + o.Size,
		Hits:      s.Hits + o.Hits,
		Misses:    s.Misses + o.Misses,
		Evictions: s.Evictions + o.Evictions,
	}
}

// String formats the snapshot as lru{capacity=N size=N hits=N misses=N}.
func (s Stats) String() string {
	return fmt.Sprintf("lru{capacity=%d size=%d hits=%d misses=%d}", s.Capacity, s.Size, s.Hits, s.Misses)
}
