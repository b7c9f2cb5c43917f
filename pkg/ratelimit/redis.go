package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const redisKeyPrefix = "ratelimit:"

// slidingWindow keeps one sorted-set member per accepted request, scored in
// milliseconds. It returns {allowed, count, oldest}.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

local count = redis.call('ZCARD', key)
if count >= limit then
	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	return {0, count, tonumber(oldest[2])}
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return {1, count + 1, now}
`)

// RedisLimiter is a sliding window shared by every instance that talks to
// the same Redis.
type RedisLimiter struct {
	client *redis.Client
	rule   Rule
	prefix string
	logger Logger
	now    func() time.Time
}

// NewRedisLimiter stores windows under ratelimit:<scope>:<key>.
func NewRedisLimiter(client *redis.Client, scope string, rule Rule, logger Logger) *RedisLimiter {
	prefix := redisKeyPrefix
	if scope != "" {
		prefix += scope + ":"
	}

	return &RedisLimiter{
		client: client,
		rule:   rule,
		prefix: prefix,
		logger: logger,
		now:    time.Now,
	}
}

func (r *RedisLimiter) Rule() Rule {
	return r.rule
}

func (r *RedisLimiter) Key(key string) string {
	return r.prefix + key
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := r.now().UnixMilli()
	window := r.rule.Window.Milliseconds()

	raw, err := slidingWindow.Run(ctx, r.client, []string{r.Key(key)},
		now, window, r.rule.Requests, uuid.NewString(),
	).Result()
	if err != nil {
		if r.logger != nil {
			r.logger.Error("Redis rate limit script failed", "key", r.Key(key), "error", err)
		}
		return Decision{}, fmt.Errorf("rate limiter redis: %w", err)
	}

	values, ok := raw.([]interface{})
	if !ok || len(values) != 3 {
		return Decision{}, fmt.Errorf("rate limiter redis: unexpected reply %v", raw)
	}
	allowed, _ := values[0].(int64)
	count, _ := values[1].(int64)
	oldest, _ := values[2].(int64)

	return decide(r.rule, allowed == 1, count, oldest, now), nil
}

func decide(rule Rule, allowed bool, count, oldestMillis, nowMillis int64) Decision {
	if allowed {
		remaining := rule.Requests - int(count)
		if remaining < 0 {
			remaining = 0
		}
		return Decision{Allowed: true, Remaining: remaining}
	}

	wait := time.Duration(oldestMillis+rule.Window.Milliseconds()-nowMillis) * time.Millisecond
	if wait <= 0 {
		wait = time.Millisecond
	}
	return Decision{RetryAfter: wait}
}

// Close is a no-op; the client belongs to the cache.
func (r *RedisLimiter) Close() error {
	return nil
}
