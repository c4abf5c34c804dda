package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bluele/gcache"
)

// MemoryResponseCache is an in-process LRU cache with per-entry expiration, used
// when no Redis is configured. Values are stored JSON-encoded so callers get the
// same copy semantics as with Redis.
type MemoryResponseCache struct {
	c gcache.Cache
}

func NewMemoryResponseCache(size int) *MemoryResponseCache {
	return &MemoryResponseCache{c: gcache.New(size).LRU().Build()}
}

func (m *MemoryResponseCache) Get(_ context.Context, key string, dst any) (bool, error) {
	v, err := m.c.Get(key)
	if errors.Is(err, gcache.KeyNotFoundError) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get memory cache key=%q: %w", key, err)
	}

	b, ok := v.([]byte)
	if !ok {
		return false, fmt.Errorf("get memory cache key=%q: unexpected value type %T", key, v)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, fmt.Errorf("get memory cache key=%q: decode: %w", key, err)
	}
	return true, nil
}

func (m *MemoryResponseCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if key == "" {
		return errors.New("set memory cache: key must not be empty")
	}
	if ttl <= 0 {
		return fmt.Errorf("set memory cache: ttl must be positive, got %s", ttl)
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("set memory cache key=%q: encode: %w", key, err)
	}

	if err := m.c.SetWithExpire(key, b, ttl); err != nil {
		return fmt.Errorf("set memory cache key=%q: %w", key, err)
	}
	return nil
}
