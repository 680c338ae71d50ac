package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

type RateLimitMiddleware struct {
	limiter Limiter
	scope   string
	limit   int
	window  time.Duration
}

func NewRateLimitMiddleware(limiter Limiter, scope string, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, scope: scope, limit: limit, window: window}
}

// Middleware keys the counter on the authenticated user, falling back to the
// client IP, so it must run after authentication.
func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.limiter == nil {
			return c.Next()
		}

		subject := c.IP()
		if id := UserID(c); id != uuid.Nil {
			subject = id.String()
		}
		if !m.limiter.Allow(c.Context(), "ratelimit:"+m.scope+":"+subject, m.limit, m.window) {
			return NewAppError(fiber.StatusTooManyRequests, "Too many requests", nil, nil)
		}
		return c.Next()
	}
}
