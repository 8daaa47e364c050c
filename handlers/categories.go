package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"expense-tracker-go-be/models"
	"expense-tracker-go-be/store"
)

type categoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func categoryNotFound(c *fiber.Ctx) error {
	return notFound(c, "Category not found", "The requested category does not exist or you do not have access to it")
}

// ListCategories returns all of the user's categories.
func (h *Handler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.Store.Categories.ListByUser(userID(c))
	if err != nil {
		return internalError(c, "Failed to retrieve categories")
	}
	return c.JSON(fiber.Map{
		"message":    "Categories retrieved successfully",
		"categories": categories,
		"total":      len(categories),
	})
}

// CreateCategory creates a category. Names are unique per user,
// case-insensitively.
func (h *Handler) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", "Request body could not be parsed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest(c, "Missing required fields", "Category name is required")
	}

	categoryType := req.Type
	if categoryType == "" {
		categoryType = models.TypeExpense
	}
	if categoryType != models.TypeExpense && categoryType != models.TypeIncome {
		return badRequest(c, "Invalid type", `Type must be either "expense" or "income"`)
	}

	category, err := h.Store.Categories.Create(userID(c), name, categoryType)
	if errors.Is(err, store.ErrDuplicateName) {
		return conflict(c, "Category already exists", "A category with this name already exists")
	}
	if err != nil {
		return internalError(c, "Failed to create category")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Category created successfully",
		"category": category,
	})
}

// UpdateCategory renames a category, re-checking the duplicate guard.
func (h *Handler) UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return categoryNotFound(c)
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", "Request body could not be parsed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest(c, "Missing required fields", "Category name is required")
	}

	category, err := h.Store.Categories.Rename(userID(c), id, name)
	if errors.Is(err, store.ErrNotFound) {
		return categoryNotFound(c)
	}
	if errors.Is(err, store.ErrDuplicateName) {
		return conflict(c, "Category already exists", "A category with this name already exists")
	}
	if err != nil {
		return internalError(c, "Failed to update category")
	}

	return c.JSON(fiber.Map{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// DeleteCategory removes a category unless transactions still reference it.
func (h *Handler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return categoryNotFound(c)
	}

	category, err := h.Store.Categories.Delete(userID(c), id)
	if errors.Is(err, store.ErrNotFound) {
		return categoryNotFound(c)
	}
	if errors.Is(err, store.ErrCategoryInUse) {
		return conflict(c, "Category in use",
			"Cannot delete category that is used in transactions. Please remove or reassign transactions first.")
	}
	if err != nil {
		return internalError(c, "Failed to delete category")
	}

	return c.JSON(fiber.Map{
		"message":  "Category deleted successfully",
		"category": category,
	})
}
