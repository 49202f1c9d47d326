// Package cache is a Redis cache-aside layer for analytics payloads.
// Statistics and reports are cheap to recompute but hit the store with
// several queries each, so hot owners get a short TTL cache. Every path
// fails open: with no Redis configured, or on any Redis error, callers
// simply recompute.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cxmpoundV/TaskManagementAPI/internal/logger"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis. An empty addr, or a failed ping, yields a disabled
// cache that misses everything.
func New(addr, password string, db int, ttl time.Duration) *Cache {
	if addr == "" {
		return &Cache{ttl: ttl}
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, cache disabled", "error", err)
		return &Cache{ttl: ttl}
	}

	logger.Info("redis cache connected", "addr", addr)
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Enabled() bool { return c != nil && c.client != nil }

// Get unmarshals the cached value into dest. Returns false on miss or error.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

func (c *Cache) Set(ctx context.Context, key string, value any) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Debug("cache set failed", "key", key, "error", err)
	}
}

// Client exposes the underlying Redis client for the rate limiter; nil when
// the cache is disabled.
func (c *Cache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}
