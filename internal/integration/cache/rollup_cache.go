// Package cache implements the rollup cache on Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Chanakan5591/carbonyx/internal/application/adapter"
)

// keyPrefix namespaces every key written by the rollup cache.
const keyPrefix = "carbonyx:rollup"

// rollupCache implements the adapter.RollupCache interface.
// Each organization keeps an index set of its payload keys so Invalidate
// does not need to scan the keyspace.
type rollupCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRollupCache creates a new Redis-backed rollup cache. Entries expire after ttl.
func NewRollupCache(client redis.UniversalClient, ttl time.Duration) adapter.RollupCache {
	return &rollupCache{
		client: client,
		ttl:    ttl,
	}
}

// Generation returns the organization's invalidation counter, zero when none was recorded.
func (c *rollupCache) Generation(ctx context.Context, organizationID string) (int64, error) {
	generation, err := c.client.Get(ctx, generationKey(organizationID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read rollup cache generation: %w", err)
	}
	return generation, nil
}

// Get returns the cached payload, or nil on a miss.
func (c *rollupCache) Get(ctx context.Context, organizationID, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, payloadKey(organizationID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read rollup cache: %w", err)
	}
	return payload, nil
}

// Set stores the payload and records its key in the organization's index.
// A non-positive ttl stores entries without expiry; they then live until Invalidate.
func (c *rollupCache) Set(ctx context.Context, organizationID, key string, payload []byte) error {
	fullKey := payloadKey(organizationID, key)
	index := indexKey(organizationID)
	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, fullKey, payload, ttl)
		pipe.SAdd(ctx, index, fullKey)
		if ttl > 0 {
			pipe.Expire(ctx, index, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write rollup cache: %w", err)
	}
	return nil
}

// Invalidate advances the organization's generation and deletes every payload indexed for it.
// Rollups computed before the bump are written under the old generation and never served.
func (c *rollupCache) Invalidate(ctx context.Context, organizationID string) error {
	index := indexKey(organizationID)

	if err := c.client.Incr(ctx, generationKey(organizationID)).Err(); err != nil {
		return fmt.Errorf("failed to advance rollup cache generation: %w", err)
	}

	keys, err := c.client.SMembers(ctx, index).Result()
	if err != nil {
		return fmt.Errorf("failed to read rollup cache index: %w", err)
	}

	if err := c.client.Del(ctx, append(keys, index)...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate rollup cache: %w", err)
	}
	return nil
}

func payloadKey(organizationID, key string) string {
	return keyPrefix + ":" + organizationID + ":" + key
}

func indexKey(organizationID string) string {
	return keyPrefix + ":" + organizationID + ":index"
}

func generationKey(organizationID string) string {
	return keyPrefix + ":" + organizationID + ":generation"
}
