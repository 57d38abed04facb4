package config

import "time"

// CacheConfig configures the profile cache tier. Redis is optional; without
// it an in-process cache serves, which is fine for single-instance
// deployments.
type CacheConfig struct {
	UseRedis      bool          `env:"USE_REDIS" envDefault:"false"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	ProfileTTL    time.Duration `env:"PROFILE_TTL" envDefault:"5m"`
}
