package config

import "time"

// CacheConfig controls the availability response cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration // lifetime of cached responses
	Prefix  string        // Redis key namespace
}

// LoadCacheConfig reads cache settings from the environment. The 30s
// default TTL keeps availability results fresh enough that a booking
// made elsewhere shows up quickly.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 30*time.Second),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}
	return cfg
}
