package handlers

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"

	"expense-tracker-go-be/auth"
	"expense-tracker-go-be/store"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new user and returns a token. The display name defaults
// to the email's local part.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", "Request body could not be parsed")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required", "Please provide both email and password")
	}
	if !emailPattern.MatchString(req.Email) {
		return badRequest(c, "Invalid email format", "Please provide a valid email address")
	}
	if len(req.Password) < 6 {
		return badRequest(c, "Password too weak", "Password must be at least 6 characters long")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return internalError(c, "Something went wrong during registration")
	}

	name := strings.SplitN(req.Email, "@", 2)[0]
	user, err := h.Store.Users.Create(name, req.Email, hash)
	if errors.Is(err, store.ErrEmailTaken) {
		return conflict(c, "User already exists", "An account with this email already exists")
	}
	if err != nil {
		return internalError(c, "Something went wrong during registration")
	}

	token, err := auth.SignToken(h.Cfg.JWTSecret, user.ID, user.Email, h.Cfg.JWTExpiry)
	if err != nil {
		return internalError(c, "Something went wrong during registration")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
		"token":   token,
	})
}

// Login authenticates a user by email and password. Unknown email and bad
// password are indistinguishable to the caller.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", "Request body could not be parsed")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Missing credentials", "Email and password are required")
	}

	user, err := h.Store.Users.FindByEmail(req.Email)
	if errors.Is(err, store.ErrNotFound) || (err == nil && !auth.CheckPassword(user.PasswordHash, req.Password)) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "Invalid credentials",
			"message": "Email or password is incorrect",
		})
	}
	if err != nil {
		return internalError(c, "Something went wrong during login")
	}

	token, err := auth.SignToken(h.Cfg.JWTSecret, user.ID, user.Email, h.Cfg.JWTExpiry)
	if err != nil {
		return internalError(c, "Something went wrong during login")
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// Me returns the authenticated user's record.
func (h *Handler) Me(c *fiber.Ctx) error {
	user, err := h.Store.Users.FindByID(userID(c))
	if err != nil {
		return internalError(c, "Something went wrong while retrieving profile")
	}

	return c.JSON(fiber.Map{
		"message": "User profile retrieved successfully",
		"user":    user,
	})
}
