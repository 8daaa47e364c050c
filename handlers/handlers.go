package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"expense-tracker-go-be/config"
	"expense-tracker-go-be/middleware"
	"expense-tracker-go-be/store"
)

// Handler carries the injected store and configuration for all routes.
type Handler struct {
	Store *store.Store
	Cfg   *config.Config
}

// New builds the handler set.
func New(s *store.Store, cfg *config.Config) *Handler {
	return &Handler{Store: s, Cfg: cfg}
}

// userID returns the authenticated user's id set by the auth middleware.
func userID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(middleware.UserIDKey).(uuid.UUID)
	return id
}

// parseDay parses a YYYY-MM-DD date in local time.
func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// endOfDay moves a midnight timestamp to the last second of the same day,
// so day ranges are inclusive.
func endOfDay(t time.Time) time.Time {
	return t.Add(24*time.Hour - time.Second)
}

func badRequest(c *fiber.Ctx, errText, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   errText,
		"message": message,
	})
}

func notFound(c *fiber.Ctx, errText, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   errText,
		"message": message,
	})
}

func conflict(c *fiber.Ctx, errText, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"error":   errText,
		"message": message,
	})
}

func internalError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal server error",
		"message": message,
	})
}
