package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"nyc-route-optimizer/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisResponseCache stores JSON-encoded provider responses in Redis with a TTL.
// It is safe for concurrent use.
type RedisResponseCache struct {
	client *redis.Client
	prefix string
}

func NewRedisResponseCache(client *redis.Client, prefix string) *RedisResponseCache {
	return &RedisResponseCache{client: client, prefix: prefix}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

func (c *RedisResponseCache) Get(ctx context.Context, key string, dst any) (_ bool, err error) {
	defer obs.Time(ctx, "redis.cache.Get")(&err)

	if key == "" {
		return false, errors.New("get response cache: key must not be empty")
	}

	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get response cache key=%q: %w", key, err)
	}

	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("get response cache key=%q: decode: %w", key, err)
	}
	return true, nil
}

func (c *RedisResponseCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if key == "" {
		return errors.New("set response cache: key must not be empty")
	}
	if ttl <= 0 {
		return fmt.Errorf("set response cache: ttl must be positive, got %s", ttl)
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("set response cache key=%q: encode: %w", key, err)
	}

	if err := c.client.Set(ctx, c.prefix+key, b, ttl).Err(); err != nil {
		return fmt.Errorf("set response cache key=%q: %w", key, err)
	}
	return nil
}
