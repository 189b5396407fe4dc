package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	localUserID  = "userId"
	localIsAdmin = "isAdmin"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// On success it stores the caller in c.Locals; read it back with Principal.
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		// Support both "Bearer <token>" and "<token>" (no prefix).
		tokenStr := authHeader
		if scheme, rest, ok := strings.Cut(authHeader, " "); ok && strings.EqualFold(scheme, "Bearer") {
			tokenStr = strings.TrimSpace(rest)
		} else if strings.EqualFold(authHeader, "Bearer") {
			tokenStr = ""
		}
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "empty token"})
		}
		claims, sub, err := Verify(tokenStr, secretBytes, expectedIssuer)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
		}
		c.Locals(localUserID, sub)
		c.Locals(localIsAdmin, claims.IsAdmin)
		return c.Next()
	}
}

// Principal returns the authenticated caller set by the middleware.
func Principal(c *fiber.Ctx) (userID uuid.UUID, isAdmin bool) {
	userID, _ = c.Locals(localUserID).(uuid.UUID)
	isAdmin, _ = c.Locals(localIsAdmin).(bool)
	return userID, isAdmin
}

// WithPrincipal sets the caller directly; used by tests and internal routes.
func WithPrincipal(userID uuid.UUID, isAdmin bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localUserID, userID)
		c.Locals(localIsAdmin, isAdmin)
		return c.Next()
	}
}
