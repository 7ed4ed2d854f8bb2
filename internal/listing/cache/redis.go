package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"provision/internal/listing/models"
)

// Redis caches listings as JSON values with a TTL so stale entries age out
// even if an invalidation is lost.
type Redis struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedis(client redis.Cmdable, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func key(id int64) string {
	return fmt.Sprintf("listing:%d", id)
}

func (c *Redis) Get(ctx context.Context, id int64) (*models.Listing, error) {
	raw, err := c.client.Get(ctx, key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	var l models.Listing
	if err := json.Unmarshal(raw, &l); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		return nil, nil
	}
	return &l, nil
}

func (c *Redis) Set(ctx context.Context, l *models.Listing) error {
	raw, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	if err := c.client.Set(ctx, key(l.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *Redis) Invalidate(ctx context.Context, id int64) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
