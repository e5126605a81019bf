package cache

import (
	"log/slog"
	"time"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when non-empty.
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	// DefaultTTL is the default TTL for cache entries.
	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for the memory cache (0 = unlimited).
	MaxSize int
}

// New creates a cache from the configuration. When a Redis URL is set but the
// server is unreachable, it logs a warning and falls back to the memory cache
// so a cache outage never takes the site down.
func New(cfg Config, logger *slog.Logger) Cacher {
	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = time.Hour
	}

	if cfg.RedisURL != "" {
		c, err := NewRedisCache(RedisCacheOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.Prefix,
			DefaultTTL: cfg.DefaultTTL,
		})
		if err == nil {
			if logger != nil {
				logger.Info("using redis cache", "prefix", cfg.Prefix)
			}
			return c
		}
		if logger != nil {
			logger.Warn("redis unavailable, falling back to memory cache", "error", err)
		}
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: time.Minute,
	})
}
