// Package ratelimit decides whether a client may make another request.
// Limiters are keyed by client (usually the IP) and namespaced by scope so
// signup and feature-request budgets never share counters.
package ratelimit

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

type Logger interface {
	Error(msg string, args ...interface{})
}

// Rule is a budget of Requests per Window.
type Rule struct {
	Requests int
	Window   time.Duration
}

// Decision is the outcome of one Allow call. RetryAfter is only set when the
// request was refused.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Rule() Rule
	Close() error
}

type Config struct {
	Rule
	// Scope namespaces Redis keys; empty for the router default.
	Scope string
	// Redis is optional. Without it the limiter is per process.
	Redis  *redis.Client
	Logger Logger
}

func New(cfg Config) RateLimiter {
	if cfg.Requests <= 0 {
		cfg.Requests = 1
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Redis != nil {
		return NewRedisLimiter(cfg.Redis, cfg.Scope, cfg.Rule, cfg.Logger)
	}
	return NewMemoryLimiter(cfg.Rule)
}
