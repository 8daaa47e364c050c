package store

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors translated to HTTP statuses at the handler boundary.
var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrDuplicateName = errors.New("category name already exists")
	ErrCategoryInUse = errors.New("category is used by transactions")
	ErrNoUpdates     = errors.New("no updates provided")
)

// Store bundles the per-entity stores around one injected DB handle.
type Store struct {
	Users        *UserStore
	Categories   *CategoryStore
	Transactions *TransactionStore
	Summary      *SummaryStore
}

// New builds a Store on top of an open GORM handle.
func New(db *gorm.DB) *Store {
	return &Store{
		Users:        &UserStore{db: db},
		Categories:   &CategoryStore{db: db},
		Transactions: &TransactionStore{db: db},
		Summary:      &SummaryStore{db: db},
	}
}
