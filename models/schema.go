package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction types.
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// Expense kinds.
const (
	ExpenseOneTime   = "one-time"
	ExpenseRecurring = "recurring"
)

// User represents a user in the system.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	Accounts     []Account `json:"accounts,omitempty"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Category is a named bucket for transactions, scoped to one user.
// Name uniqueness (case-insensitive per user) is enforced at the store layer.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Type      string    `gorm:"not null;default:expense" json:"type"` // expense or income
	CreatedAt time.Time `json:"created_at"`
}

func (c *Category) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Transaction represents a financial transaction, either an expense or an income.
type Transaction struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	AccountID   *uuid.UUID `gorm:"type:uuid" json:"account_id"`
	Amount      float64    `gorm:"not null" json:"amount"`
	Type        string     `gorm:"not null;index" json:"type"` // expense or income
	Description string     `json:"description"`
	Date        time.Time  `gorm:"not null;index" json:"date"`
	ExpenseType string     `gorm:"default:one-time" json:"expense_type"` // one-time or recurring
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	ReceiptPath string     `json:"receipt_path,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (t *Transaction) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Account represents a money account owned by a user. Accounts are migrated and
// returned with the profile but no endpoint manipulates them yet.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Type      string    `json:"type"`
	Balance   float64   `gorm:"default:0" json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Account) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
