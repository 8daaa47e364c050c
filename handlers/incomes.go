package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"expense-tracker-go-be/models"
	"expense-tracker-go-be/store"
)

type incomeRequest struct {
	Amount      *float64 `json:"amount"`
	Date        string   `json:"date"`
	Source      string   `json:"source"`
	Description string   `json:"description"`
}

// foldSource merges the income source into the stored description, as
// "source: description".
func foldSource(source, description string) string {
	switch {
	case description != "" && source != "":
		return fmt.Sprintf("%s: %s", source, description)
	case description != "":
		return description
	default:
		return source
	}
}

func incomeNotFound(c *fiber.Ctx) error {
	return notFound(c, "Income not found", "The requested income does not exist or you do not have access to it")
}

// ListIncomes returns the user's incomes, optionally filtered by date range.
func (h *Handler) ListIncomes(c *fiber.Ctx) error {
	uid := userID(c)

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	filter := store.TransactionFilter{
		Type:   models.TypeIncome,
		Limit:  limit,
		Offset: offset,
	}

	if start := c.Query("start"); start != "" {
		day, err := parseDay(start)
		if err != nil {
			return badRequest(c, "Invalid date format", "Dates should be in format YYYY-MM-DD")
		}
		filter.Start = &day
	}
	if end := c.Query("end"); end != "" {
		day, err := parseDay(end)
		if err != nil {
			return badRequest(c, "Invalid date format", "Dates should be in format YYYY-MM-DD")
		}
		last := endOfDay(day)
		filter.End = &last
	}

	incomes, err := h.Store.Transactions.FindWithFilters(uid, filter)
	if err != nil {
		return internalError(c, "Failed to retrieve incomes")
	}

	return c.JSON(fiber.Map{
		"message": "Incomes retrieved successfully",
		"incomes": incomes,
		"total":   len(incomes),
		"filters": fiber.Map{
			"start": c.Query("start"),
			"end":   c.Query("end"),
		},
		"pagination": fiber.Map{
			"limit":  limit,
			"offset": offset,
		},
	})
}

// GetIncome returns one income by id, scoped to its owner.
func (h *Handler) GetIncome(c *fiber.Ctx) error {
	tx, ok := h.findTyped(c, models.TypeIncome)
	if !ok {
		return nil
	}
	return c.JSON(fiber.Map{
		"message": "Income retrieved successfully",
		"income":  tx,
	})
}

// CreateIncome creates an income row.
func (h *Handler) CreateIncome(c *fiber.Ctx) error {
	var req incomeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", "Request body could not be parsed")
	}

	if req.Amount == nil || req.Date == "" {
		return badRequest(c, "Missing required fields", "Amount and date are required")
	}
	if *req.Amount <= 0 {
		return badRequest(c, "Invalid amount", "Amount must be a positive number")
	}

	date, err := parseDay(req.Date)
	if err != nil {
		return badRequest(c, "Invalid date format", "Dates should be in format YYYY-MM-DD")
	}

	tx := models.Transaction{
		UserID:      userID(c),
		Amount:      *req.Amount,
		Type:        models.TypeIncome,
		Description: foldSource(req.Source, req.Description),
		Date:        date,
	}

	if err := h.Store.Transactions.Create(&tx); err != nil {
		return internalError(c, "Failed to create income")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Income created successfully",
		"income":  tx,
	})
}

// UpdateIncome applies a sparse update to an income.
func (h *Handler) UpdateIncome(c *fiber.Ctx) error {
	uid := userID(c)

	existing, ok := h.findTyped(c, models.TypeIncome)
	if !ok {
		return nil
	}

	var req incomeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", "Request body could not be parsed")
	}

	updates := map[string]interface{}{}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return badRequest(c, "Invalid amount", "Amount must be a positive number")
		}
		updates["amount"] = *req.Amount
	}
	if req.Date != "" {
		date, err := parseDay(req.Date)
		if err != nil {
			return badRequest(c, "Invalid date format", "Dates should be in format YYYY-MM-DD")
		}
		updates["date"] = date
	}
	if req.Description != "" || req.Source != "" {
		updates["description"] = foldSource(req.Source, req.Description)
	}

	tx, err := h.Store.Transactions.Update(uid, existing.ID, updates)
	if errors.Is(err, store.ErrNoUpdates) {
		return badRequest(c, "No updates provided", "No valid fields to update")
	}
	if errors.Is(err, store.ErrNotFound) {
		return incomeNotFound(c)
	}
	if err != nil {
		return internalError(c, "Failed to update income")
	}

	return c.JSON(fiber.Map{
		"message": "Income updated successfully",
		"income":  tx,
	})
}

// DeleteIncome removes an income.
func (h *Handler) DeleteIncome(c *fiber.Ctx) error {
	existing, ok := h.findTyped(c, models.TypeIncome)
	if !ok {
		return nil
	}

	deleted, err := h.Store.Transactions.Delete(userID(c), existing.ID)
	if errors.Is(err, store.ErrNotFound) {
		return incomeNotFound(c)
	}
	if err != nil {
		return internalError(c, "Failed to delete income")
	}

	return c.JSON(fiber.Map{
		"message": "Income deleted successfully",
		"income":  deleted,
	})
}
