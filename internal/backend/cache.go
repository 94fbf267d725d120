package backend

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"busdash/internal/models"

	"github.com/redis/go-redis/v9"
)

// cacheRetryAfter is how long the cache stays bypassed after a Redis error.
const cacheRetryAfter = time.Minute

// cacheState tracks Redis health. While the cache is down, list calls go
// straight to the backend.
type cacheState struct {
	down     atomic.Bool
	downedAt atomic.Int64
}

func cacheKey(collection models.Collection) string {
	return "busdash:collection:" + string(collection)
}

func cacheKeys() []string {
	keys := make([]string, 0, len(models.Collections))
	for _, col := range models.Collections {
		keys = append(keys, cacheKey(col))
	}
	return keys
}

func (c *Client) cacheEnabled() bool {
	return c.redis != nil && c.cacheTTL > 0
}

// cacheUsable reports whether Redis may be used right now. Once the retry
// window has passed, every cached collection is dropped as a health check: a
// mutation made while Redis was unreachable could not invalidate it.
func (c *Client) cacheUsable(ctx context.Context) bool {
	if !c.cacheEnabled() {
		return false
	}
	if !c.cache.down.Load() {
		return true
	}
	if time.Since(time.Unix(0, c.cache.downedAt.Load())) < cacheRetryAfter {
		return false
	}

	if err := c.redis.Del(ctx, cacheKeys()...).Err(); err != nil {
		c.markCacheDown(err)
		return false
	}
	c.cache.down.Store(false)
	c.logger.Info().Msg("redis cache recovered")
	return true
}

func (c *Client) markCacheDown(err error) {
	c.cache.downedAt.Store(time.Now().UnixNano())
	if !c.cache.down.Swap(true) {
		c.logger.Warn().Err(err).Dur("retry_after", cacheRetryAfter).Msg("redis cache unavailable, bypassing")
	}
}

func (c *Client) readCache(ctx context.Context, key string) ([]byte, bool) {
	if !c.cacheUsable(ctx) {
		return nil, false
	}
	val, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.markCacheDown(err)
		}
		return nil, false
	}
	return val, true
}

func (c *Client) writeCache(ctx context.Context, key string, raw []byte) {
	if !c.cacheUsable(ctx) {
		return
	}
	if err := c.redis.Set(ctx, key, raw, c.cacheTTL).Err(); err != nil {
		c.markCacheDown(err)
	}
}

// DropCache discards every cached collection so the next list calls hit
// the backend. Bookings embed their bus and tour package, which is why a
// mutation of any entity drops all three keys. The delete is attempted
// even while the cache is marked down.
func (c *Client) DropCache(ctx context.Context) {
	if !c.cacheEnabled() {
		return
	}
	if err := c.redis.Del(ctx, cacheKeys()...).Err(); err != nil {
		c.markCacheDown(err)
	}
}
