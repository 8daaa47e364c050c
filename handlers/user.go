package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"expense-tracker-go-be/store"
)

// UserProfile returns the authenticated user's profile with accounts.
// The password hash is never serialized.
func (h *Handler) UserProfile(c *fiber.Ctx) error {
	profile, err := h.Store.Users.FindByIDWithAccounts(userID(c))
	if errors.Is(err, store.ErrNotFound) {
		return notFound(c, "User not found", "User profile could not be retrieved")
	}
	if err != nil {
		return internalError(c, "Failed to retrieve user profile")
	}

	return c.JSON(fiber.Map{
		"message": "User profile retrieved successfully",
		"profile": profile,
	})
}
