package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const listKey = "invoices:list"

// NewClient returns a configured go-redis client from a URL
// (e.g. redis://localhost:6379/0) and verifies connectivity.
func NewClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return client, nil
}

// ListCache holds the rendered invoice list between mutations. The store
// stays the single source of truth; a mutation drops the key and the next
// list read repopulates it.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{client: client, ttl: ttl}
}

// Get returns the cached list payload, or ok=false on a miss.
func (c *ListCache) Get(ctx context.Context) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, listKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("reading list cache: %w", err)
	}

	return payload, true, nil
}

func (c *ListCache) Set(ctx context.Context, payload []byte) error {
	if err := c.client.Set(ctx, listKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing list cache: %w", err)
	}

	return nil
}

func (c *ListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, listKey).Err(); err != nil {
		return fmt.Errorf("invalidating list cache: %w", err)
	}

	return nil
}
