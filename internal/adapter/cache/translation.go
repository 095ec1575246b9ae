// Package cache keeps machine translation results in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "translate"

// TranslationCache stores translated text keyed by language pair and source text.
type TranslationCache struct {
	rdb *goredis.Client
	ttl time.Duration
	log *slog.Logger
}

// NewTranslationCache connects to the Redis server at url and pings it.
func NewTranslationCache(ctx context.Context, url string, ttl time.Duration, logger *slog.Logger) (*TranslationCache, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second

	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &TranslationCache{
		rdb: rdb,
		ttl: ttl,
		log: logger.With("adapter", "redis"),
	}, nil
}

// Key returns the cache key for q translated from source into target.
// The text is hashed so keys stay short and free of separators.
func Key(source, target, q string) string {
	sum := sha256.Sum256([]byte(q))
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, source, target, hex.EncodeToString(sum[:]))
}

// Get returns the cached translation and whether one was found.
func (c *TranslationCache) Get(ctx context.Context, source, target, q string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, Key(source, target, q)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

// Set stores a translation for the configured TTL.
func (c *TranslationCache) Set(ctx context.Context, source, target, q, translated string) error {
	if err := c.rdb.Set(ctx, Key(source, target, q), translated, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (c *TranslationCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *TranslationCache) Close() error {
	return c.rdb.Close()
}
