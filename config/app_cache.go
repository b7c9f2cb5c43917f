package config

import (
	"context"
	"fmt"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	pkgredis "github.com/akeren/waitlist-api/pkg/redis"
	"github.com/caarlos0/env/v10"
)

// Cache backs the public stats snapshot and, through its Redis client, the
// shared rate limit windows.
type Cache interface {
	// Get returns ("", nil) on a miss.
	Get(ctx context.Context, key string) (string, error)
	// Set with ttl 0 never expires.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

type CacheConfig struct {
	Host     string `env:"REDIS_HOST"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

func LoadCacheConfig() (*CacheConfig, error) {
	cc := &CacheConfig{}
	if err := env.Parse(cc); err != nil {
		return nil, fmt.Errorf("failed to parse cache config: %w", err)
	}
	cc.Host = sanitizeEnv(cc.Host)
	if cc.DB < 0 {
		cc.DB = 0
	}
	return cc, nil
}

func (cc *CacheConfig) IsConfigured() bool {
	return cc.Host != ""
}

// NewCacheOrNil connects to Redis. Redis is optional: when it is missing or
// unreachable the result is nil and callers degrade to per-process state.
func (cc *CacheConfig) NewCacheOrNil(logger *log.Logger) Cache {
	if !cc.IsConfigured() {
		logger.Info("Redis is not configured; stats are not cached and rate limits are per instance")
		return nil
	}

	cache, err := pkgredis.NewRedisCache(&pkgredis.Config{
		Host:     cc.Host,
		Port:     cc.Port,
		Password: cc.Password,
		DB:       cc.DB,
	})
	if err != nil {
		logger.Warn("Redis unreachable; continuing without it", "host", cc.Host, "error", err)
		return nil
	}

	logger.Info("Redis connected", "host", cc.Host, "db", cc.DB)
	return cache
}

func CloseCache(cache Cache, logger *log.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Close(); err != nil {
		logger.Error("Failed to close Redis", "error", err)
		return
	}
	logger.Info("Redis connection closed")
}
