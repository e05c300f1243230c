package middleware

import (
	"errors"
	"strings"

	"skillbridge/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	CtxUserIDKey = "user_id"
	CtxRoleKey   = "user_type"

	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"
)

// AuthMiddleware resolves the caller identity. Requests arriving through
// the gateway carry trusted identity headers; direct calls fall back to a
// Bearer access token.
type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if raw := strings.TrimSpace(c.Get(headerUserID)); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil {
				return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
			}
			c.Locals(CtxUserIDKey, userID)
			c.Locals(CtxRoleKey, strings.TrimSpace(c.Get(headerRole)))
			return c.Next()
		}

		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxUserIDKey, claims.UserID)
		c.Locals(CtxRoleKey, claims.Role)

		return c.Next()
	}
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
