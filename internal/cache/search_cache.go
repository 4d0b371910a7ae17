// Package cache keeps people-search responses in Redis so repeated proposals
// for the same roles and location do not spend provider credits twice.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/plantparty/outreach/internal/model"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL applies when no positive TTL is configured.
	DefaultTTL = 24 * time.Hour

	keyPrefix = "outreach:search:"
)

type SearchCache interface {
	Get(ctx context.Context, filter string, size int) ([]model.RawCandidate, bool, error)
	Set(ctx context.Context, filter string, size int, records []model.RawCandidate) error
}

type RedisSearchCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSearchCache(rdb *redis.Client, ttl time.Duration) *RedisSearchCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisSearchCache{rdb: rdb, ttl: ttl}
}

func (c *RedisSearchCache) Get(ctx context.Context, filter string, size int) ([]model.RawCandidate, bool, error) {
	data, err := c.rdb.Get(ctx, Key(filter, size)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("search cache GET: %w", err)
	}

	var records []model.RawCandidate
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("decode cached search: %w", err)
	}
	return records, true, nil
}

func (c *RedisSearchCache) Set(ctx context.Context, filter string, size int, records []model.RawCandidate) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode search for cache: %w", err)
	}
	if err := c.rdb.Set(ctx, Key(filter, size), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("search cache SET: %w", err)
	}
	return nil
}

// Key derives the Redis key for a filter and result size.
func Key(filter string, size int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s", size, filter)))
	return keyPrefix + hex.EncodeToString(sum[:])
}
