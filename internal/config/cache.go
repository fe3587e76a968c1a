package config

import (
	"time"

	"github.com/spf13/viper"
)

// CacheConfig configures the Redis cache in front of the menu endpoints.
// Caching is off when Enabled is false or no Redis client is available.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
	// MaxBodyBytes caps the size of a cached response; larger bodies are
	// served but not stored.  Zero means no cap.
	MaxBodyBytes int
}

// LoadCacheConfig reads the CACHE_* keys from v.
func LoadCacheConfig(v *viper.Viper) CacheConfig {
	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("CACHE_PREFIX", "menu-cache")
	v.SetDefault("CACHE_MAX_BODY_BYTES", 1<<20)

	ttl := v.GetDuration("CACHE_TTL")
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return CacheConfig{
		Enabled:      v.GetBool("CACHE_ENABLED"),
		TTL:          ttl,
		Prefix:       v.GetString("CACHE_PREFIX"),
		MaxBodyBytes: v.GetInt("CACHE_MAX_BODY_BYTES"),
	}
}
