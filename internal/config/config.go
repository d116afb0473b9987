// Package config loads cache and logging settings from defaults, an optional
// config file, and LRUCACHE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"lrucache/internal/cache"
	"lrucache/internal/logging"
)

// EnvPrefix is prepended to every environment override, e.g. LRUCACHE_CACHE_CAPACITY.
const EnvPrefix = "LRUCACHE"

// Config is the full set of recognized options.
type Config struct {
	Cache   CacheConfig   `mapstructure:"cache"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type CacheConfig struct {
	Capacity int `mapstructure:"capacity"`
	// Shards > 0 selects a Sharded cache; 0 means a single cache.
	Shards int `mapstructure:"shards"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	log := logging.DefaultConfig()
	return &Config{
		Cache: CacheConfig{
			Capacity: cache.DefaultCapacity,
		},
		Logging: LoggingConfig{
			Level:  log.Level,
			Format: log.Format,
		},
	}
}

// Load reads configuration. Each path is searched for config.{yaml,json,toml};
// a missing file is not an error. Environment variables override the file.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())

	if len(paths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("cache.capacity", defaults.Cache.Capacity)
	v.SetDefault("cache.shards", defaults.Cache.Shards)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
}

// Validate rejects settings New would refuse, plus unknown logging values.
func (c *Config) Validate() error {
	if c.Cache.Capacity <= 0 {
		return fmt.Errorf("cache.capacity: %w: got %d", cache.ErrInvalidCapacity, c.Cache.Capacity)
	}
	if c.Cache.Shards < 0 || c.Cache.Shards > c.Cache.Capacity {
		return fmt.Errorf("cache.shards: %w: got %d", cache.ErrInvalidShardCount, c.Cache.Shards)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format: must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// LoggingOptions converts to the logging package's config.
func (c *Config) LoggingOptions() logging.Config {
	out := logging.DefaultConfig()
	out.Level = c.Logging.Level
	out.Format = c.Logging.Format
	return out
}

// CacheOptions converts to a cache.Config for the given key/value types.
// log may be nil, in which case evictions are not logged.
func CacheOptions[K comparable, V any](c *Config, log *zerolog.Logger) cache.Config[K, V] {
	return cache.Config[K, V]{Capacity: c.Cache.Capacity, Logger: log}
}
