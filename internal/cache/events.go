// Package cache holds the Redis-backed event-list cache.  It exists to
// keep dashboard renders and the stats refresher from hammering the
// backend's /api/events on every page load; booking-critical fetches
// (event detail, seat maps) never go through it.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goticket/goticket-web/internal/config"
	"github.com/goticket/goticket-web/internal/model"
)

// Events caches the full event list under a single key.  All operations
// are best-effort: a Redis hiccup behaves like a cache miss.
type Events struct {
	rdb *redis.Client
	ttl time.Duration
	key string
}

// NewEvents builds the cache, or returns nil when caching is disabled or
// Redis is unavailable.  Callers must skip wiring a nil cache.
func NewEvents(rdb *redis.Client, cfg config.CacheConfig) *Events {
	if rdb == nil || !cfg.Enabled {
		return nil
	}
	return &Events{rdb: rdb, ttl: cfg.TTL, key: cfg.Prefix + ":events"}
}

// Get returns the cached event list, with ok=false on miss, expiry, Redis
// failure or a payload that no longer unmarshals.
func (e *Events) Get(ctx context.Context) ([]model.Event, bool) {
	raw, err := e.rdb.Get(ctx, e.key).Bytes()
	if err != nil {
		return nil, false
	}
	var events []model.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, false
	}
	return events, true
}

// Set stores the event list for the configured TTL.  Failures are
// swallowed; the next Get just misses.
func (e *Events) Set(ctx context.Context, events []model.Event) {
	raw, err := json.Marshal(events)
	if err != nil {
		return
	}
	e.rdb.Set(ctx, e.key, raw, e.ttl)
}
