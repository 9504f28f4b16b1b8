// AngelaMos | 2026
// cache.go

package property

import (
	"context"
	"log/slog"
	"time"

	"github.com/househunt/go-backend/internal/core"
)

const (
	listKey          = "properties:list"
	listWithOwnerKey = "properties:list:owners"
)

// ListCache holds the public property lists. Implementations swallow their
// own failures; a miss is always safe.
type ListCache interface {
	GetList(ctx context.Context) ([]Property, bool)
	SetList(ctx context.Context, props []Property)
	GetListings(ctx context.Context) ([]Listing, bool)
	SetListings(ctx context.Context, listings []Listing)
	Invalidate(ctx context.Context)
}

type redisListCache struct {
	redis *core.Redis
	ttl   time.Duration
}

// NewRedisListCache returns a cache backed by r. A nil or disabled r yields
// a cache that always misses.
func NewRedisListCache(r *core.Redis, ttl time.Duration) ListCache {
	if !r.Enabled() || ttl <= 0 {
		return noopCache{}
	}
	return &redisListCache{redis: r, ttl: ttl}
}

func (c *redisListCache) GetList(ctx context.Context) ([]Property, bool) {
	var props []Property
	return props, c.get(ctx, listKey, &props)
}

func (c *redisListCache) SetList(ctx context.Context, props []Property) {
	c.set(ctx, listKey, props)
}

func (c *redisListCache) GetListings(ctx context.Context) ([]Listing, bool) {
	var listings []Listing
	return listings, c.get(ctx, listWithOwnerKey, &listings)
}

func (c *redisListCache) SetListings(ctx context.Context, listings []Listing) {
	c.set(ctx, listWithOwnerKey, listings)
}

func (c *redisListCache) Invalidate(ctx context.Context) {
	if err := c.redis.Delete(ctx, listKey, listWithOwnerKey); err != nil {
		slog.WarnContext(ctx, "property cache invalidate failed", "error", err)
	}
}

func (c *redisListCache) get(ctx context.Context, key string, dest any) bool {
	found, err := c.redis.GetJSON(ctx, key, dest)
	if err != nil {
		slog.WarnContext(ctx, "property cache read failed",
			"key", key,
			"error", err,
		)
		return false
	}
	return found
}

func (c *redisListCache) set(ctx context.Context, key string, value any) {
	if err := c.redis.SetJSON(ctx, key, value, c.ttl); err != nil {
		slog.WarnContext(ctx, "property cache write failed",
			"key", key,
			"error", err,
		)
	}
}

type noopCache struct{}

func (noopCache) GetList(context.Context) ([]Property, bool)    { return nil, false }
func (noopCache) SetList(context.Context, []Property)           {}
func (noopCache) GetListings(context.Context) ([]Listing, bool) { return nil, false }
func (noopCache) SetListings(context.Context, []Listing)        {}
func (noopCache) Invalidate(context.Context)                    {}
