package postgres

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"eventregistration/internal/domain"
)

const cacheKeyEvents = "events"

// cachedEventConfigRepository is a read-through cache in front of an
// EventConfigRepository. Event configuration is edited out of band and read on
// every page load, so a short TTL keeps the pages cheap without hiding edits
// for long. Errors are never cached.
type cachedEventConfigRepository struct {
	next  domain.EventConfigRepository
	cache *gocache.Cache
}

// NewCachedEventConfigRepository wraps next. A non-positive ttl disables
// caching and returns next itself.
func NewCachedEventConfigRepository(next domain.EventConfigRepository, ttl time.Duration) domain.EventConfigRepository {
	if ttl <= 0 {
		return next
	}
	return &cachedEventConfigRepository{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *cachedEventConfigRepository) List(ctx context.Context) ([]*domain.EventConfig, error) {
	if v, ok := c.cache.Get(cacheKeyEvents); ok {
		if events, ok := v.([]*domain.EventConfig); ok {
			return cloneAll(events), nil
		}
	}
	events, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(cacheKeyEvents, cloneAll(events))
	return events, nil
}

// Invalidate drops the cached collection so the next List reads through.
func (c *cachedEventConfigRepository) Invalidate() {
	c.cache.Delete(cacheKeyEvents)
}

func cloneAll(events []*domain.EventConfig) []*domain.EventConfig {
	out := make([]*domain.EventConfig, len(events))
	for i, e := range events {
		out[i] = e.Clone()
	}
	return out
}
