package config

import (
	"os"
	"sync"
	"time"
)

// RedisConfig is optional; an empty URL disables the search cache.
type RedisConfig struct {
	URL      string
	CacheTTL time.Duration
}

var (
	redisConfig *RedisConfig
	redisOnce   sync.Once
)

func LoadRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		redisConfig = &RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			CacheTTL: envDuration("SEARCH_CACHE_TTL", 24*time.Hour),
		}
	})
	return redisConfig
}
