package store

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"expense-tracker-go-be/models"
)

// TransactionStore persists transactions (expenses and incomes). Every query
// is scoped to the owning user; a row owned by someone else is reported as
// not found, never as a permission error.
type TransactionStore struct {
	db *gorm.DB
}

// TransactionFilter narrows a listing. Zero values mean "no constraint".
type TransactionFilter struct {
	Type        string
	ExpenseType string
	Start       *time.Time
	End         *time.Time
	Category    string // case-insensitive substring of the category name
	Limit       int
	Offset      int
}

// Create inserts a new transaction and reloads it with its category.
func (s *TransactionStore) Create(tx *models.Transaction) error {
	if err := s.db.Create(tx).Error; err != nil {
		return err
	}
	return s.db.Preload("Category").First(tx, "id = ?", tx.ID).Error
}

// FindByID returns a transaction scoped to its owner, or ErrNotFound.
func (s *TransactionStore) FindByID(userID, id uuid.UUID) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", id, userID).
		First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// FindByUser lists a user's transactions of the given type, newest first.
func (s *TransactionStore) FindByUser(userID uuid.UUID, txType string, limit, offset int) ([]models.Transaction, error) {
	query := s.db.Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC")
	if txType != "" {
		query = query.Where("type = ?", txType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var txs []models.Transaction
	err := query.Find(&txs).Error
	return txs, err
}

// FindWithFilters lists a user's transactions matching the filter, newest
// first. The category filter matches the category name as a case-insensitive
// substring, which restricts results to categorized rows.
func (s *TransactionStore) FindWithFilters(userID uuid.UUID, f TransactionFilter) ([]models.Transaction, error) {
	query := s.db.Model(&models.Transaction{}).Preload("Category").
		Where("transactions.user_id = ?", userID).
		Order("transactions.date DESC")

	if f.Type != "" {
		query = query.Where("transactions.type = ?", f.Type)
	}
	if f.ExpenseType != "" {
		query = query.Where("transactions.expense_type = ?", f.ExpenseType)
	}
	if f.Start != nil {
		query = query.Where("transactions.date >= ?", *f.Start)
	}
	if f.End != nil {
		query = query.Where("transactions.date <= ?", *f.End)
	}
	if f.Category != "" {
		pattern := "%" + strings.ToLower(f.Category) + "%"
		query = query.
			Joins("JOIN categories ON categories.id = transactions.category_id").
			Where("LOWER(categories.name) LIKE ?", pattern)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}

	var txs []models.Transaction
	err := query.Find(&txs).Error
	return txs, err
}

// FindUncategorized lists a user's transactions that have no category,
// newest first, capped at limit.
func (s *TransactionStore) FindUncategorized(userID uuid.UUID, limit int) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.db.Where("user_id = ? AND category_id IS NULL", userID).
		Order("date DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

// Update applies a sparse field set to a transaction. An empty set returns
// ErrNoUpdates; a row that does not exist for this user returns ErrNotFound.
func (s *TransactionStore) Update(userID, id uuid.UUID, updates map[string]interface{}) (*models.Transaction, error) {
	if len(updates) == 0 {
		return nil, ErrNoUpdates
	}

	tx, err := s.FindByID(userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(tx).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.FindByID(userID, id)
}

// Delete removes a transaction and returns the deleted row.
func (s *TransactionStore) Delete(userID, id uuid.UUID) (*models.Transaction, error) {
	tx, err := s.FindByID(userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(tx).Error; err != nil {
		return nil, err
	}
	return tx, nil
}
