package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SummaryCache implements usecase.SummaryCache using Redis. A miss is
// reported as a nil value, not an error.
type SummaryCache struct {
	client *redis.Client
	prefix string
}

// NewSummaryCache creates a new SummaryCache.
func NewSummaryCache(client *redis.Client) *SummaryCache {
	return &SummaryCache{
		client: client,
		prefix: "cache:",
	}
}

// Get retrieves a value by key.
func (c *SummaryCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return value, nil
}

// Set stores a value with TTL.
func (c *SummaryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Delete removes a key.
func (c *SummaryCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
