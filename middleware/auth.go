package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"expense-tracker-go-be/auth"
	"expense-tracker-go-be/store"
)

// Locals keys set by RequireAuth.
const (
	UserIDKey = "userID"
	EmailKey  = "userEmail"
)

// RequireAuth verifies the bearer token and stores the caller's identity in
// the request locals. A missing token is 401; an invalid or expired one is
// 403. The token's user must still exist in the store.
func RequireAuth(users *store.UserStore, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Access denied",
				"message": "No token provided",
			})
		}

		claims, err := auth.ParseToken(secret, token)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "Invalid token",
				"message": "Token verification failed",
			})
		}

		if _, err := users.FindByID(claims.UserID); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Invalid token",
				"message": "User not found",
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(EmailKey, claims.Email)
		return c.Next()
	}
}
