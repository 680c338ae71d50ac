package middleware

import (
	"errors"
	"strings"

	"agri-match/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
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

// Middleware rejects requests without a valid access token.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if err := m.authenticate(c, token); err != nil {
			return err
		}
		return c.Next()
	}
}

// Optional authenticates when a token is present and lets anonymous
// requests through as public viewers.
func (m *AuthMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Next()
		}
		if err := m.authenticate(c, token); err != nil {
			return err
		}
		return c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c fiber.Ctx, token string) error {
	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
		}
		return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
	}

	c.Locals(CtxUserIDKey, claims.UserID)
	c.Locals(CtxRoleKey, claims.Role)
	return nil
}

// UserID returns the authenticated caller, uuid.Nil for anonymous requests.
func UserID(c fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxUserIDKey).(uuid.UUID)
	return id
}

func Role(c fiber.Ctx) string {
	role, _ := c.Locals(CtxRoleKey).(string)
	return role
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
