package middleware

import (
	"strconv"
	"time"

	"jobradar/internal/logger"
	"jobradar/internal/metrics"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	log logger.Logger
}

func NewAccessLogMiddleware(log logger.Logger) *AccessLogMiddleware {
	return &AccessLogMiddleware{log: logger.OrNop(log)}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		dur := time.Since(start)
		status := c.Response().StatusCode()
		if err != nil {
			// the error middleware sits inside this one, so a returned error
			// means the status has not been written yet
			status, _, _ = normalizeError(err)
		}

		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Method(), route, strconv.Itoa(status)).
			Observe(dur.Seconds())

		m.log.Info("http access", map[string]interface{}{
			"request_id": rid,
			"ip":         c.IP(),
			"method":     c.Method(),
			"path":       c.OriginalURL(),
			"status":     status,
			"latency_ms": dur.Milliseconds(),
			"req_bytes":  c.Request().Header.ContentLength(),
			"resp_bytes": len(c.Response().Body()),
			"user_agent": c.Get("User-Agent"),
		})

		return err
	}
}
