package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"expense-tracker-go-be/models"
	"expense-tracker-go-be/store"
)

// ListExpenses returns the user's expenses, optionally filtered by date
// range, category name, and expense kind.
func (h *Handler) ListExpenses(c *fiber.Ctx) error {
	uid := userID(c)

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	filter := store.TransactionFilter{
		Type:     models.TypeExpense,
		Category: c.Query("category"),
		Limit:    limit,
		Offset:   offset,
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
	if kind := c.Query("type"); kind != "" {
		if kind != models.ExpenseOneTime && kind != models.ExpenseRecurring {
			return badRequest(c, "Invalid type", `Type must be either "one-time" or "recurring"`)
		}
		filter.ExpenseType = kind
	}

	expenses, err := h.Store.Transactions.FindWithFilters(uid, filter)
	if err != nil {
		return internalError(c, "Failed to retrieve expenses")
	}

	return c.JSON(fiber.Map{
		"message":  "Expenses retrieved successfully",
		"expenses": expenses,
		"total":    len(expenses),
		"filters": fiber.Map{
			"start":    c.Query("start"),
			"end":      c.Query("end"),
			"category": c.Query("category"),
			"type":     c.Query("type"),
		},
		"pagination": fiber.Map{
			"limit":  limit,
			"offset": offset,
		},
	})
}

// GetExpense returns one expense by id, scoped to its owner.
func (h *Handler) GetExpense(c *fiber.Ctx) error {
	tx, ok := h.findTyped(c, models.TypeExpense)
	if !ok {
		return nil
	}
	return c.JSON(fiber.Map{
		"message": "Expense retrieved successfully",
		"expense": tx,
	})
}

// CreateExpense creates an expense from a multipart form, with an optional
// receipt file. The receipt is only written after field validation passes,
// and is removed again if the insert fails.
func (h *Handler) CreateExpense(c *fiber.Ctx) error {
	uid := userID(c)

	amountStr := c.FormValue("amount")
	dateStr := c.FormValue("date")
	if amountStr == "" || dateStr == "" {
		return badRequest(c, "Missing required fields", "Amount and date are required")
	}

	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		return badRequest(c, "Invalid amount", "Amount must be a positive number")
	}

	date, err := parseDay(dateStr)
	if err != nil {
		return badRequest(c, "Invalid date format", "Dates should be in format YYYY-MM-DD")
	}

	expenseType := c.FormValue("type", models.ExpenseOneTime)
	if expenseType != models.ExpenseOneTime && expenseType != models.ExpenseRecurring {
		return badRequest(c, "Invalid type", `Type must be either "one-time" or "recurring"`)
	}

	tx := models.Transaction{
		UserID:      uid,
		Amount:      amount,
		Type:        models.TypeExpense,
		Description: c.FormValue("description"),
		Date:        date,
		ExpenseType: expenseType,
	}

	if expenseType == models.ExpenseRecurring {
		startStr := c.FormValue("startDate")
		if startStr == "" {
			return badRequest(c, "Missing start date", "Start date is required for recurring expenses")
		}
		start, err := parseDay(startStr)
		if err != nil {
			return badRequest(c, "Invalid date format", "Dates should be in format YYYY-MM-DD")
		}
		tx.StartDate = &start

		if endStr := c.FormValue("endDate"); endStr != "" {
			end, err := parseDay(endStr)
			if err != nil {
				return badRequest(c, "Invalid date format", "Dates should be in format YYYY-MM-DD")
			}
			tx.EndDate = &end
		}
	}

	if rawCategory := c.FormValue("categoryId"); rawCategory != "" {
		categoryID, ok := h.resolveCategory(c, uid, rawCategory)
		if !ok {
			return nil
		}
		tx.CategoryID = &categoryID
	}

	receiptPath, err := h.saveReceipt(c)
	if isReceiptValidationErr(err) {
		return badRequest(c, "Invalid receipt", err.Error())
	}
	if err != nil {
		return internalError(c, "Failed to store receipt file")
	}
	tx.ReceiptPath = receiptPath

	if err := h.Store.Transactions.Create(&tx); err != nil {
		removeReceipt(receiptPath)
		return internalError(c, "Failed to create expense")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Expense created successfully",
		"expense": tx,
	})
}

// UpdateExpense applies a sparse update; only provided fields change. A new
// receipt file replaces the old one, which is deleted after a successful
// update.
func (h *Handler) UpdateExpense(c *fiber.Ctx) error {
	uid := userID(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return expenseNotFound(c)
	}

	updates := map[string]interface{}{}

	if amountStr := c.FormValue("amount"); amountStr != "" {
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil || amount <= 0 {
			return badRequest(c, "Invalid amount", "Amount must be a positive number")
		}
		updates["amount"] = amount
	}
	if dateStr := c.FormValue("date"); dateStr != "" {
		date, err := parseDay(dateStr)
		if err != nil {
			return badRequest(c, "Invalid date format", "Dates should be in format YYYY-MM-DD")
		}
		updates["date"] = date
	}
	if description := c.FormValue("description"); description != "" {
		updates["description"] = description
	}
	if rawCategory := c.FormValue("categoryId"); rawCategory != "" {
		categoryID, ok := h.resolveCategory(c, uid, rawCategory)
		if !ok {
			return nil
		}
		updates["category_id"] = categoryID
	}

	existing, err := h.Store.Transactions.FindByID(uid, id)
	if errors.Is(err, store.ErrNotFound) || (err == nil && existing.Type != models.TypeExpense) {
		return expenseNotFound(c)
	}
	if err != nil {
		return internalError(c, "Failed to update expense")
	}

	receiptPath, err := h.saveReceipt(c)
	if isReceiptValidationErr(err) {
		return badRequest(c, "Invalid receipt", err.Error())
	}
	if err != nil {
		return internalError(c, "Failed to store receipt file")
	}
	if receiptPath != "" {
		updates["receipt_path"] = receiptPath
	}

	if len(updates) == 0 {
		return badRequest(c, "No updates provided", "No valid fields to update")
	}

	tx, err := h.Store.Transactions.Update(uid, id, updates)
	if err != nil {
		removeReceipt(receiptPath)
		if errors.Is(err, store.ErrNotFound) {
			return expenseNotFound(c)
		}
		return internalError(c, "Failed to update expense")
	}

	// The old receipt is orphaned once the row points at the new one.
	if receiptPath != "" && existing.ReceiptPath != "" && existing.ReceiptPath != receiptPath {
		removeReceipt(existing.ReceiptPath)
	}

	return c.JSON(fiber.Map{
		"message": "Expense updated successfully",
		"expense": tx,
	})
}

// DeleteExpense removes an expense and its receipt file, if any.
func (h *Handler) DeleteExpense(c *fiber.Ctx) error {
	tx, ok := h.findTyped(c, models.TypeExpense)
	if !ok {
		return nil
	}

	deleted, err := h.Store.Transactions.Delete(userID(c), tx.ID)
	if errors.Is(err, store.ErrNotFound) {
		return expenseNotFound(c)
	}
	if err != nil {
		return internalError(c, "Failed to delete expense")
	}

	removeReceipt(deleted.ReceiptPath)

	return c.JSON(fiber.Map{
		"message": "Expense deleted successfully",
		"expense": deleted,
	})
}

// findTyped fetches the :id transaction and checks it has the wanted type.
// On failure it writes the 404/500 response and returns ok=false.
func (h *Handler) findTyped(c *fiber.Ctx, txType string) (*models.Transaction, bool) {
	notFoundResp := expenseNotFound
	if txType == models.TypeIncome {
		notFoundResp = incomeNotFound
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		_ = notFoundResp(c)
		return nil, false
	}

	tx, err := h.Store.Transactions.FindByID(userID(c), id)
	if errors.Is(err, store.ErrNotFound) {
		_ = notFoundResp(c)
		return nil, false
	}
	if err != nil {
		_ = internalError(c, "Failed to retrieve transaction")
		return nil, false
	}
	if tx.Type != txType {
		_ = notFoundResp(c)
		return nil, false
	}
	return tx, true
}

// resolveCategory parses and ownership-checks a categoryId form value. On
// failure it writes the 400 response and returns ok=false.
func (h *Handler) resolveCategory(c *fiber.Ctx, uid uuid.UUID, raw string) (uuid.UUID, bool) {
	categoryID, err := uuid.Parse(raw)
	if err != nil {
		_ = badRequest(c, "Invalid category", "Category id is not valid")
		return uuid.Nil, false
	}
	if _, err := h.Store.Categories.FindByID(uid, categoryID); err != nil {
		_ = badRequest(c, "Invalid category", "The category does not exist or you do not have access to it")
		return uuid.Nil, false
	}
	return categoryID, true
}
