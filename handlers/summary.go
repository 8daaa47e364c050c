package handlers

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"expense-tracker-go-be/models"
	"expense-tracker-go-be/store"
)

var (
	monthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	dayPattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

type typeSummary struct {
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

type typeBreakdown struct {
	typeSummary
	ByCategory []store.CategoryTotal `json:"by_category"`
}

// MonthlySummary reports totals, balance, and savings rate for one calendar
// month (current month when no parameter is given).
func (h *Handler) MonthlySummary(c *fiber.Ctx) error {
	year, month := time.Now().Year(), int(time.Now().Month())

	if raw := c.Query("month"); raw != "" {
		m := monthPattern.FindStringSubmatch(raw)
		if m == nil {
			return badRequest(c, "Invalid month format", "Month should be in format YYYY-MM (e.g., 2025-08)")
		}
		year, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return badRequest(c, "Invalid month format", "Month should be in format YYYY-MM (e.g., 2025-08)")
		}
	}

	start, end := store.MonthWindow(year, month)
	totals, err := h.Store.Summary.TotalsByType(userID(c), start, end)
	if err != nil {
		return internalError(c, "Failed to retrieve monthly summary")
	}

	return c.JSON(fiber.Map{
		"message": "Monthly summary retrieved successfully",
		"period":  fmt.Sprintf("%04d-%02d", year, month),
		"summary": fiber.Map{
			"income":       typeSummary{Total: totals.IncomeTotal, Count: totals.IncomeCount},
			"expense":      typeSummary{Total: totals.ExpenseTotal, Count: totals.ExpenseCount},
			"balance":      totals.Balance(),
			"savings_rate": totals.SavingsRate(),
		},
	})
}

// RangeSummary reports totals plus a per-category breakdown between two
// dates, both required as YYYY-MM-DD.
func (h *Handler) RangeSummary(c *fiber.Ctx) error {
	startStr, endStr := c.Query("start"), c.Query("end")

	if startStr == "" || endStr == "" {
		return badRequest(c, "Missing required parameters", "Both start and end dates are required (format: YYYY-MM-DD)")
	}
	if !dayPattern.MatchString(startStr) || !dayPattern.MatchString(endStr) {
		return badRequest(c, "Invalid date format", "Dates should be in format YYYY-MM-DD")
	}

	start, err := parseDay(startStr)
	if err != nil {
		return badRequest(c, "Invalid date format", "Dates should be in format YYYY-MM-DD")
	}
	endDay, err := parseDay(endStr)
	if err != nil {
		return badRequest(c, "Invalid date format", "Dates should be in format YYYY-MM-DD")
	}
	end := endOfDay(endDay)

	uid := userID(c)
	totals, err := h.Store.Summary.TotalsByType(uid, start, end)
	if err != nil {
		return internalError(c, "Failed to retrieve summary")
	}
	breakdown, err := h.Store.Summary.CategoryBreakdown(uid, start, end)
	if err != nil {
		return internalError(c, "Failed to retrieve summary")
	}

	// Split the ordered breakdown per type; store order (total desc) is kept.
	income := typeBreakdown{
		typeSummary: typeSummary{Total: totals.IncomeTotal, Count: totals.IncomeCount},
		ByCategory:  []store.CategoryTotal{},
	}
	expense := typeBreakdown{
		typeSummary: typeSummary{Total: totals.ExpenseTotal, Count: totals.ExpenseCount},
		ByCategory:  []store.CategoryTotal{},
	}
	for _, row := range breakdown {
		switch row.Type {
		case models.TypeIncome:
			income.ByCategory = append(income.ByCategory, row)
		case models.TypeExpense:
			expense.ByCategory = append(expense.ByCategory, row)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Summary retrieved successfully",
		"period": fiber.Map{
			"start": startStr,
			"end":   endStr,
		},
		"summary": fiber.Map{
			"income":       income,
			"expense":      expense,
			"balance":      totals.Balance(),
			"savings_rate": totals.SavingsRate(),
		},
	})
}

// SummaryAlerts evaluates the overspend rules against the current month.
func (h *Handler) SummaryAlerts(c *fiber.Ctx) error {
	now := time.Now()
	start, end := store.MonthWindow(now.Year(), int(now.Month()))

	totals, err := h.Store.Summary.TotalsByType(userID(c), start, end)
	if err != nil {
		return internalError(c, "Failed to retrieve alerts")
	}

	alert, message := store.BuildAlert(totals)

	var messageJSON interface{}
	if message != "" {
		messageJSON = message
	}
	var spendingRate interface{}
	if rate, ok := totals.SpendingRate(); ok {
		spendingRate = strconv.FormatFloat(rate, 'f', 1, 64)
	}

	return c.JSON(fiber.Map{
		"alert":         alert,
		"message":       messageJSON,
		"current_month": now.Format("2006-01"),
		"details": fiber.Map{
			"total_income":   totals.IncomeTotal,
			"total_expenses": totals.ExpenseTotal,
			"balance":        totals.Balance(),
			"spending_rate":  spendingRate,
		},
	})
}
