package config

import "time"

// CacheConfig controls the Redis-backed event-list cache.  When Enabled is
// false or no Redis client could be constructed, caching is disabled and
// every event-list render hits the backend.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads cache settings from the environment.  Defaults
// keep event lists for thirty seconds, matching the dashboard refresh
// cadence.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: getenv("CACHE_ENABLED", "true") == "true",
		TTL:     getdur("CACHE_TTL", 30*time.Second),
		Prefix:  getenv("CACHE_PREFIX", "goticket"),
	}
}
