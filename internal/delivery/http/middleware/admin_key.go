package middleware

import (
	"strings"

	"jobradar/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/crypto/bcrypt"
)

const HeaderAPIKey = "X-API-Key"

// AdminKeyMiddleware guards operator endpoints with a shared key that is
// only ever stored as a bcrypt hash.
type AdminKeyMiddleware struct {
	hash []byte
}

func NewAdminKeyMiddleware(apiKeyHash string) *AdminKeyMiddleware {
	return &AdminKeyMiddleware{hash: []byte(strings.TrimSpace(apiKeyHash))}
}

func (m *AdminKeyMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if len(m.hash) == 0 {
			return NewAppError(fiber.StatusForbidden, response.MessageAdminDisabled, nil, nil)
		}

		key := strings.TrimSpace(c.Get(HeaderAPIKey))
		if key == "" {
			return NewAppError(fiber.StatusUnauthorized, response.MessageMissingAPIKey, nil, nil)
		}
		if err := bcrypt.CompareHashAndPassword(m.hash, []byte(key)); err != nil {
			return NewAppError(fiber.StatusForbidden, response.MessageInvalidAPIKey, nil, nil)
		}
		return c.Next()
	}
}
