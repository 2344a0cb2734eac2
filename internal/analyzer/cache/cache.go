// Package cache provides a Redis-backed cache for analysis results with
// singleflight deduplication of concurrent identical requests.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/textlens/text-analysis-platform/pkg/metrics"
	"github.com/textlens/text-analysis-platform/pkg/redis"
)

const keyPrefix = "analysis:"

// ResultCache caches JSON-serialised analysis results in Redis. A nil
// client disables caching; every lookup then falls through to compute.
type ResultCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
	group   singleflight.Group
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64
}

// New creates a ResultCache.
func New(client *redis.Client, ttl time.Duration, m *metrics.Metrics) *ResultCache {
	return &ResultCache{
		client:  client,
		ttl:     ttl,
		metrics: m,
		logger:  slog.Default().With("component", "result-cache"),
	}
}

// Key derives the cache key for a feature, its parameters, and the input
// text. Texts that differ only in surrounding whitespace share a key.
func Key(feature, params, text string) string {
	sum := sha256.Sum256([]byte(feature + "\x00" + params + "\x00" + strings.TrimSpace(text)))
	return keyPrefix + feature + ":" + hex.EncodeToString(sum[:16])
}

// GetOrCompute returns the cached result for key, or runs compute and
// caches its outcome. Concurrent callers with the same key share one
// compute call. The bool reports whether the result came from cache.
func GetOrCompute[T any](ctx context.Context, c *ResultCache, key string, compute func() (T, error)) (T, bool, error) {
	var zero T
	if c == nil || c.client == nil {
		result, err := compute()
		return result, false, err
	}

	if result, ok := lookup[T](ctx, c, key); ok {
		return result, true, nil
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have populated the key while we waited.
		if result, ok := lookup[T](ctx, c, key); ok {
			return result, nil
		}
		result, err := compute()
		if err != nil {
			return zero, err
		}
		c.store(ctx, key, result)
		return result, nil
	})
	if err != nil {
		return zero, false, err
	}
	return value.(T), false, nil
}

func lookup[T any](ctx context.Context, c *ResultCache, key string) (T, bool) {
	var result T
	raw, err := c.client.Get(ctx, key)
	if err != nil {
		if !redis.IsNilError(err) {
			c.logger.Warn("cache get failed", "key", key, "error", err)
		}
		c.misses.Add(1)
		if c.metrics != nil {
			c.metrics.CacheMissesTotal.Inc()
		}
		return result, false
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		c.logger.Warn("cache entry corrupt", "key", key, "error", err)
		c.misses.Add(1)
		if c.metrics != nil {
			c.metrics.CacheMissesTotal.Inc()
		}
		return result, false
	}
	c.hits.Add(1)
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.Inc()
	}
	return result, true
}

func (c *ResultCache) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("cache set failed", "key", key, "error", err)
	}
}

// Invalidate removes all cached analysis results, returning the number of
// keys deleted.
func (c *ResultCache) Invalidate(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	return c.client.FlushByPattern(ctx, keyPrefix+"*")
}

// Stats reports cumulative hit and miss counts.
func (c *ResultCache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}
