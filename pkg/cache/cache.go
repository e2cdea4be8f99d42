package cache

import (
	"context"
	"encoding/json"
	"time"

	"movie-reservation/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is an optional Redis-backed cache for the read-mostly movie
// catalog. A nil *Cache is valid and turns every operation into a no-op,
// so callers never branch on whether Redis is configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// New connects to Redis, or returns nil when no address is configured.
func New(config utils.RedisConfig, log *zap.Logger) *Cache {
	if config.Addr == "" {
		log.Info("Redis not configured, catalog cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, catalog cache disabled", zap.Error(err))
		return nil
	}

	return &Cache{
		client: client,
		ttl:    time.Duration(config.TTLMinutes) * time.Minute,
		log:    log.With(zap.String("component", "cache")),
	}
}

// Get unmarshals the cached value into dest and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Cache get failed", zap.Error(err), zap.String("key", key))
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warn("Cache entry corrupt", zap.Error(err), zap.String("key", key))
		return false
	}

	return true
}

// Set stores value under key with the configured TTL. Failures are logged
// and swallowed, a cold cache is never an error.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Cache marshal failed", zap.Error(err), zap.String("key", key))
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("Cache set failed", zap.Error(err), zap.String("key", key))
	}
}

func (c *Cache) Close() {
	if c == nil {
		return
	}
	c.client.Close()
}
