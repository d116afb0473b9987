package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/rs/zerolog"

	"lrucache/internal/cache"
	"lrucache/internal/config"
	"lrucache/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LoggingOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}

	log.Info().
		Int("capacity", cfg.Cache.Capacity).
		Int("shards", cfg.Cache.Shards).
		Msg("lru demo starting")

	if err := run(ctx, log, cfg); err != nil {
		log.Error().Err(err).Msg("demo failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, log zerolog.Logger, cfg *config.Config) error {
	// -------------------------------------------------------------------
	// 1) Eviction order demo (capacity=2)
	// -------------------------------------------------------------------
	small, err := cache.New(cache.Config[string, int]{Capacity: 2, Logger: &log})
	if err != nil {
		return err
	}

	small.Set("a", 1)
	small.Set("b", 2)
	if e, ok := small.Set("c", 3); ok {
		log.Info().Str("evicted", e.Key).Msg("SET c overflowed the cache")
	}

	// Touch b so c becomes least-recently-used.
	if v, ok := small.Get("b"); ok {
		log.Info().Int("value", v).Msg("GET b (touches b -> MRU)")
	}

	if e, ok := small.Set("d", 4); ok {
		log.Info().Str("evicted", e.Key).Msg("SET d overflowed the cache")
	}
	log.Info().Strs("keys", slices.Collect(small.Keys())).Msg("keys after eviction (LRU->MRU)")

	if _, err := small.Fetch("a"); err != nil {
		log.Info().Err(err).Msg("FETCH a")
	}
	fmt.Println(small)

	if err := ctx.Err(); err != nil {
		log.Info().Msg("received shutdown signal")
		return nil
	}

	// -------------------------------------------------------------------
	// 2) Configured cache, filled past capacity
	// -------------------------------------------------------------------
	if cfg.Cache.Shards > 0 {
		sharded, err := cache.NewSharded(cfg.Cache.Shards, config.CacheOptions[string, int](cfg, &log))
		if err != nil {
			return err
		}
		fill(ctx, sharded.Set, sharded.Get, cfg.Cache.Capacity)
		log.Info().Int("shards", sharded.ShardCount()).Int("size", sharded.Len()).Msg("sharded cache filled")
		fmt.Println(sharded)
		return nil
	}

	c, err := cache.New(config.CacheOptions[string, int](cfg, &log))
	if err != nil {
		return err
	}
	fill(ctx, c.Set, c.Get, cfg.Cache.Capacity)
	st := c.Stats()
	log.Info().
		Int("size", st.Size).
		Uint64("evictions", st.Evictions).
		Float64("hit_ratio", st.HitRatio()).
		Msg("cache filled")
	fmt.Println(c)
	return nil
}

// fill writes 2*n keys and reads back every key, so the first half misses.
func fill(ctx context.Context, set func(string, int) (cache.Entry[string, int], bool), get func(string) (int, bool), n int) {
	for i := 0; i < 2*n; i++ {
		if ctx.Err() != nil {
			return
		}
		set(fmt.Sprintf("key-%d", i), i)
	}
	for i := 0; i < 2*n; i++ {
		get(fmt.Sprintf("key-%d", i))
	}
}
