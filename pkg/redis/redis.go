package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ikkim/bizdir-backend/config"
	"github.com/ikkim/bizdir-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "bizdir:"

// Cache stores JSON-encoded lookup responses with a TTL. A nil *Cache is a
// valid, always-missing cache so callers need no branching when Redis is off.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// Connect opens the Redis connection. An empty address returns (nil, nil).
func Connect(cfg *config.RedisConfig) (*Cache, error) {
	if cfg.Addr == "" {
		logger.Info("Redis address not set, lookup cache disabled")
		return nil, nil
	}

	logger.Info("Initializing Redis connection", map[string]interface{}{
		"addr": cfg.Addr,
		"db":   cfg.DB,
	})

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully")
	return NewCache(client, cfg.TTL), nil
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

// GetJSON decodes the cached value into dest. It reports false on a miss or
// on any Redis error; errors are logged, never returned, because the cache is
// an optimisation only.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.Warn("Lookup cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn("Lookup cache entry undecodable", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	return true
}

// SetJSON stores value under key with the cache TTL
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Lookup cache encode failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		logger.Warn("Lookup cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Delete drops key, used after the city sync job rewrites stored cities
func (c *Cache) Delete(ctx context.Context, key string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		logger.Warn("Lookup cache delete failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	logger.Info("Closing Redis connection")
	return c.client.Close()
}
