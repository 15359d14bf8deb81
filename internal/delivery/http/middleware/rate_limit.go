package middleware

import (
	"math"
	"strconv"

	"jobradar/internal/logger"
	"jobradar/internal/metrics"
	"jobradar/internal/pkg/response"
	"jobradar/internal/ratelimit"

	"github.com/gofiber/fiber/v3"
)

// RateLimitMiddleware applies a per-caller sliding window. Authenticated
// callers are keyed by token subject, everyone else by client IP, so it must
// run after the optional auth middleware.
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	log     logger.Logger
}

func NewRateLimitMiddleware(limiter ratelimit.Limiter, log logger.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, log: logger.OrNop(log)}
}

func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m.limiter == nil {
			return c.Next()
		}

		key := "ip:" + c.IP()
		if uid := UserID(c); uid != "" {
			key = "user:" + uid
		}

		d, err := m.limiter.Allow(c.Context(), key)
		if err != nil {
			// fail open
			m.log.Warn("rate limiter unavailable", map[string]interface{}{"key": key, "error": err})
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		if !d.Allowed {
			metrics.RateLimited.Inc()
			retry := int(math.Ceil(d.RetryAfter.Seconds()))
			if retry < 1 {
				retry = 1
			}
			c.Set("Retry-After", strconv.Itoa(retry))
			return NewAppError(fiber.StatusTooManyRequests, response.MessageTooManyRequests, fiber.Map{"retry_after": retry}, nil)
		}
		return c.Next()
	}
}
