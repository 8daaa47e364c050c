package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"expense-tracker-go-be/models"
)

// SummaryStore runs the grouped aggregation queries behind the summary
// endpoints. Shaping of the grouped rows (balance, savings rate, alerts)
// lives on PeriodTotals and BuildAlert so it can be tested without a DB.
type SummaryStore struct {
	db *gorm.DB
}

// PeriodTotals holds the per-type totals of one time window.
type PeriodTotals struct {
	IncomeTotal    float64
	IncomeCount    int64
	IncomeAverage  float64
	ExpenseTotal   float64
	ExpenseCount   int64
	ExpenseAverage float64
}

// CategoryTotal is one row of the category breakdown: a category name
// (or "Uncategorized"), a transaction type, and its count and total.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

// Uncategorized is the bucket name for transactions without a category.
const Uncategorized = "Uncategorized"

type typeRow struct {
	Type    string
	Count   int64
	Total   float64
	Average float64
}

// TotalsByType sums and counts a user's transactions per type within
// [start, end], both inclusive.
func (s *SummaryStore) TotalsByType(userID uuid.UUID, start, end time.Time) (PeriodTotals, error) {
	var rows []typeRow
	err := s.db.Model(&models.Transaction{}).
		Select("type, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total, COALESCE(AVG(amount), 0) AS average").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return PeriodTotals{}, err
	}

	var totals PeriodTotals
	for _, row := range rows {
		switch row.Type {
		case models.TypeIncome:
			totals.IncomeTotal = row.Total
			totals.IncomeCount = row.Count
			totals.IncomeAverage = row.Average
		case models.TypeExpense:
			totals.ExpenseTotal = row.Total
			totals.ExpenseCount = row.Count
			totals.ExpenseAverage = row.Average
		}
	}
	return totals, nil
}

// CategoryBreakdown groups a user's transactions in [start, end] by
// (category, type). Rows without a category land in the Uncategorized
// bucket. Results are ordered by descending total, for top-categories views.
func (s *SummaryStore) CategoryBreakdown(userID uuid.UUID, start, end time.Time) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(categories.name, ?) AS name, transactions.type AS type, COUNT(*) AS count, COALESCE(SUM(transactions.amount), 0) AS total", Uncategorized).
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.date >= ? AND transactions.date <= ?", userID, start, end).
		Group("categories.name, transactions.type").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

// MonthWindow returns the inclusive bounds of a calendar month in local time:
// first day 00:00:00 through last day 23:59:59.
func MonthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// Balance is income minus expenses.
func (t PeriodTotals) Balance() float64 {
	return t.IncomeTotal - t.ExpenseTotal
}

// SavingsRate is balance over income as a percentage with two decimals.
// Zero income yields "0.00", never NaN or a division error.
func (t PeriodTotals) SavingsRate() string {
	if t.IncomeTotal <= 0 {
		return "0.00"
	}
	return strconv.FormatFloat(t.Balance()/t.IncomeTotal*100, 'f', 2, 64)
}

// SpendingRate is expenses over income as a percentage. ok is false when
// there is no income, so callers short-circuit instead of dividing by zero.
func (t PeriodTotals) SpendingRate() (rate float64, ok bool) {
	if t.IncomeTotal <= 0 {
		return 0, false
	}
	return t.ExpenseTotal / t.IncomeTotal * 100, true
}

// BuildAlert evaluates the overspend rules for one month's totals.
// Alert fires when expenses exceed income, or when more than 80% of a
// positive income has been spent. Message tiers, first match wins:
// exceeded budget, expenses with no income, high spending rate, none.
func BuildAlert(t PeriodTotals) (alert bool, message string) {
	overspent := t.ExpenseTotal > t.IncomeTotal
	rate, hasIncome := t.SpendingRate()

	alert = overspent || (hasIncome && rate > 80)

	switch {
	case overspent && hasIncome:
		message = fmt.Sprintf("You've exceeded your monthly budget by $%.2f", t.ExpenseTotal-t.IncomeTotal)
	case overspent:
		message = fmt.Sprintf("You have expenses of $%.2f but no recorded income this month", t.ExpenseTotal)
	case hasIncome && rate > 80:
		message = fmt.Sprintf("You've spent %.1f%% of your monthly income. Consider monitoring your expenses.", rate)
	}
	return alert, message
}
