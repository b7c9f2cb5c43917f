package factory

import (
	"context"
	"time"

	"github.com/akeren/waitlist-api/pkg/circuitbreaker"
	"github.com/akeren/waitlist-api/pkg/ratelimit"
	"github.com/go-redis/redis/v8"
)

type Cache interface {
	Ping(ctx context.Context) error
}

type RedisClientProvider interface {
	GetClient() *redis.Client
}

// RateLimiterFactory builds per-route limiters that share the process backend.
type RateLimiterFactory interface {
	CreateRateLimiter(scope string, requests int, window time.Duration) ratelimit.RateLimiter
}

// Logger is the subset of *log.Logger the factories report through.
type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type DefaultRateLimiterFactory struct {
	redis  *redis.Client
	logger ratelimit.Logger
}

// NewDefaultRateLimiterFactory uses Redis when cache exposes a client and
// falls back to in-memory limiters otherwise.
func NewDefaultRateLimiterFactory(cache Cache, logger ratelimit.Logger) *DefaultRateLimiterFactory {
	var redisClient *redis.Client
	if cache != nil {
		if provider, ok := cache.(RedisClientProvider); ok {
			redisClient = provider.GetClient()
		}
	}

	return &DefaultRateLimiterFactory{
		redis:  redisClient,
		logger: logger,
	}
}

func (f *DefaultRateLimiterFactory) UsesRedis() bool {
	return f.redis != nil
}

func (f *DefaultRateLimiterFactory) CreateRateLimiter(scope string, requests int, window time.Duration) ratelimit.RateLimiter {
	return ratelimit.New(ratelimit.Config{
		Rule:   ratelimit.Rule{Requests: requests, Window: window},
		Scope:  scope,
		Redis:  f.redis,
		Logger: f.logger,
	})
}

type FactoryContainer struct {
	RateLimiterFactory RateLimiterFactory
	BreakerConfig      circuitbreaker.Config
	logger             Logger
}

// NewFactoryContainer uses circuitbreaker.DefaultConfig when breakerConfig is nil.
func NewFactoryContainer(cache Cache, logger Logger, breakerConfig *circuitbreaker.Config) *FactoryContainer {
	cfg := circuitbreaker.DefaultConfig()
	if breakerConfig != nil {
		cfg = *breakerConfig
	}

	var limiterLogger ratelimit.Logger
	if logger != nil {
		limiterLogger = logger
	}

	return &FactoryContainer{
		RateLimiterFactory: NewDefaultRateLimiterFactory(cache, limiterLogger),
		BreakerConfig:      cfg,
		logger:             logger,
	}
}

// NewCircuitBreaker returns a fresh breaker named after the dependency it
// guards. Transitions are logged.
func (fc *FactoryContainer) NewCircuitBreaker(name string) *circuitbreaker.Breaker {
	breaker := circuitbreaker.New(name, fc.BreakerConfig)
	if fc.logger == nil {
		return breaker
	}

	return breaker.OnStateChange(func(name string, from, to circuitbreaker.State) {
		if to == circuitbreaker.Open {
			fc.logger.Warn("Circuit breaker opened", "dependency", name, "from", from.String())
			return
		}
		fc.logger.Warn("Circuit breaker state changed", "dependency", name, "from", from.String(), "to", to.String())
	})
}
