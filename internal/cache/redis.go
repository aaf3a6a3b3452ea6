package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is a small JSON cache over redis, used for popularity rankings.
// All methods are nil-receiver safe: with no redis configured the cache
// degrades to a permanent miss and the engine recomputes from Postgres.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// New connects to redis from a URL ("redis://host:6379"). The connection is
// verified with a ping so a bad address fails at startup, not first use.
func New(ctx context.Context, redisURL string, ttl time.Duration, logger *zap.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("redis connection established", zap.String("addr", opts.Addr))
	return &Cache{client: client, ttl: ttl, logger: logger}, nil
}

// GetJSON loads key into v. Returns false on a miss (including nil cache).
func (c *Cache) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		// A corrupt entry is treated as a miss; the writer will replace it.
		c.logger.Warn("dropping corrupt cache entry", zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

// SetJSON stores v under key with the cache TTL. No-op on a nil cache.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cache entry %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the redis connection. Safe on nil.
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
