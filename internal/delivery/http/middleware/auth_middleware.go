package middleware

import (
	"errors"
	"strings"

	"jobradar/internal/pkg/jwt"
	"jobradar/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserIDKey = "user_id"
	CtxRoleKey   = "role"
)

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Optional identifies the caller when a valid bearer token is present and
// lets anonymous requests through untouched.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return c.Next()
		}
		claims, err := m.jwt.ValidateAccessToken(token)
		if err == nil {
			setIdentity(c, claims)
		}
		return c.Next()
	}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
		}

		claims, err := m.jwt.ValidateAccessToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, response.MessageTokenExpired, nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, response.MessageInvalidToken, nil, err)
		}

		setIdentity(c, claims)
		return c.Next()
	}
}

func setIdentity(c fiber.Ctx, claims jwt.Claims) {
	c.Locals(CtxUserIDKey, claims.Subject)
	c.Locals(CtxRoleKey, claims.Role)
}

// UserID returns the authenticated subject, or "" for anonymous callers.
func UserID(c fiber.Ctx) string {
	v, _ := c.Locals(CtxUserIDKey).(string)
	return v
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
