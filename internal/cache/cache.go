package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/uuid"
	"github.com/redis/go-redis/v9"
)

// Cache stores the rendered JSON of a record next to its ETag, both expiring
// after the same TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string, ttl time.Duration) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb, ttl: ttl}
}

// GetRecord returns nil data on a miss. A half-present entry counts as a miss.
func (c *Cache) GetRecord(ctx context.Context, kind string, id uuid.UUID) ([]byte, string, error) {
	logger.Debugf(ctx, "getting entry in cache for %s #%s...", kind, id)

	vals, err := c.client.MGet(ctx, getCacheKey(kind, id, false), getCacheKey(kind, id, true)).Result()
	if err != nil {
		return nil, "", fmt.Errorf("redis get failed: %w", err)
	}
	data, okData := vals[0].(string)
	etag, okEtag := vals[1].(string)
	if !okData || !okEtag || etag == "" {
		return nil, "", nil // cache miss
	}
	return []byte(data), etag, nil
}

func (c *Cache) SetRecord(ctx context.Context, kind string, id uuid.UUID, data []byte, etag string) {
	logger.Debugf(ctx, "creating entry in cache for %s #%s, valid for %s...", kind, id, c.ttl)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, getCacheKey(kind, id, false), data, c.ttl)
		pipe.Set(ctx, getCacheKey(kind, id, true), etag, c.ttl)
		return nil
	})
	if err != nil {
		logger.Warnf(ctx, "⚠️  failed to cache %s #%s: %v", kind, id, err)
	}
}

func (c *Cache) DeleteRecord(ctx context.Context, kind string, id uuid.UUID) error {
	logger.Debugf(ctx, "deleting entry in cache for %s #%s...", kind, id)

	if err := c.client.Del(ctx, getCacheKey(kind, id, false), getCacheKey(kind, id, true)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(kind string, id uuid.UUID, etag bool) string {
	key := kind + ":" + id.String()
	if etag {
		return "etag:" + key
	}
	return key
}
