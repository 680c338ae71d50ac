package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Fixed-window counter: the first hit in a window sets its expiry.
const script = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const callTimeout = 250 * time.Millisecond

type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
	logger *zap.Logger
}

// NewRedisLimiter returns nil for a nil client; a nil limiter allows everything.
func NewRedisLimiter(client *redis.Client, logger *zap.Logger) *RedisLimiter {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(script),
		logger: logger.Named("ratelimit"),
	}
}

// Allow reports whether another hit on key fits in the window. Redis errors
// allow the request.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{key}, ttl, limit).Int64()
	if err != nil {
		l.logger.Debug("rate limit check failed", zap.String("key", key), zap.Error(err))
		return true
	}
	return allowed == 1
}
