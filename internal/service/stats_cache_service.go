package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	// StatsKeyPrefix namespaces every cached aggregation in Redis.
	StatsKeyPrefix = "stats:"

	statsScanCount = 100
)

// StatsCache keeps computed dashboard aggregations in Redis for a TTL.
// Concurrent misses on the same key share one computation.
type StatsCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
	group       singleflight.Group
}

func NewStatsCache(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *StatsCache {
	return &StatsCache{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// CachedStats returns the cached value of key or computes and stores it.
// Redis failures degrade to computing on every call. A nil cache always computes.
func CachedStats[T any](ctx context.Context, c *StatsCache, key string, compute func(context.Context) (*T, error)) (*T, error) {
	if c == nil {
		return compute(ctx)
	}
	fullKey := StatsKeyPrefix + key

	raw, err := c.redisClient.Get(ctx, fullKey).Bytes()
	switch {
	case err == nil:
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		c.log.Warnf("Failed to decode cached stats %s, recomputing", key)
	case !errors.Is(err, redis.Nil):
		c.log.Warnf("Failed to read stats cache %s: %+v", key, err)
	}

	// Waiters share one computation; it ignores the starting caller's cancellation.
	shared := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(fullKey, func() (interface{}, error) {
		result, err := compute(shared)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(result)
		if err != nil {
			c.log.Warnf("Failed to encode stats %s: %+v", key, err)
			return result, nil
		}
		if err := c.redisClient.Set(shared, fullKey, payload, c.ttl).Err(); err != nil {
			c.log.Warnf("Failed to store stats cache %s: %+v", key, err)
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}

// Invalidate drops every cached aggregation. Called after admin writes.
func (c *StatsCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}

	var keys []string
	iter := c.redisClient.Scan(ctx, 0, StatsKeyPrefix+"*", statsScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warnf("Failed to scan stats cache: %+v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.redisClient.Del(ctx, keys...).Err(); err != nil {
		c.log.Warnf("Failed to invalidate stats cache: %+v", err)
		return
	}
	c.log.Debugf("Stats cache invalidated: %d keys", len(keys))
}
