// Package cache provides the external news cache keyed by topic and
// country. Cache unavailability degrades to uncached fetches; it never
// fails an analysis run.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// NewsCache stores serialized news risk results with a freshness window.
type NewsCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
}

// Key builds the cache key for a (topic, country) pair.
func Key(topic, countryCode string) string {
	return fmt.Sprintf("news_risk:%s:%s", topic, countryCode)
}

// RedisCache implements NewsCache on top of Redis.
type RedisCache struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisCache connects to Redis using a redis:// URL.
func NewRedisCache(url string, logger zerolog.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RedisCache{client: client, logger: logger}, nil
}

// Get returns the cached value for key, if present and fresh.
// Read errors are logged and reported as misses.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache read failed, bypassing cache")
		return "", false
	}
	return val, true
}

// Set stores value under key with the given TTL. Write errors are logged
// and otherwise ignored.
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NopCache is the cache used when Redis is not configured or unreachable.
type NopCache struct{}

// Get always misses.
func (NopCache) Get(ctx context.Context, key string) (string, bool) { return "", false }

// Set discards the value.
func (NopCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {}
