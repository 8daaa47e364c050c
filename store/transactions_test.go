package store

import (
	"time"

	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"expense-tracker-go-be/models"
)

type TransactionStoreSuite struct {
	suite.Suite
	store *Store
	user  *models.User
	other *models.User
}

func (s *TransactionStoreSuite) SetupTest() {
	s.store = newTestStore(s.T())
	s.user = createTestUser(s.T(), s.store, "owner@example.com")
	s.other = createTestUser(s.T(), s.store, "other@example.com")
}

func (s *TransactionStoreSuite) createExpense(amount float64, date time.Time, categoryID *uuid.UUID) *models.Transaction {
	tx := &models.Transaction{
		UserID:      s.user.ID,
		CategoryID:  categoryID,
		Amount:      amount,
		Type:        models.TypeExpense,
		Description: "test expense",
		Date:        date,
		ExpenseType: models.ExpenseOneTime,
	}
	s.Require().NoError(s.store.Transactions.Create(tx))
	return tx
}

func (s *TransactionStoreSuite) TestFindByIDScopedToOwner() {
	tx := s.createExpense(10, day(2025, 8, 1), nil)

	found, err := s.store.Transactions.FindByID(s.user.ID, tx.ID)
	s.Require().NoError(err)
	s.Equal(tx.ID, found.ID)

	// Another user sees not-found, not a permission error.
	_, err = s.store.Transactions.FindByID(s.other.ID, tx.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *TransactionStoreSuite) TestUpdateAndDeleteHideForeignRows() {
	tx := s.createExpense(10, day(2025, 8, 1), nil)

	_, err := s.store.Transactions.Update(s.other.ID, tx.ID, map[string]interface{}{"amount": 20.0})
	s.ErrorIs(err, ErrNotFound)

	_, err = s.store.Transactions.Delete(s.other.ID, tx.ID)
	s.ErrorIs(err, ErrNotFound)

	// The row is untouched for the real owner.
	found, err := s.store.Transactions.FindByID(s.user.ID, tx.ID)
	s.Require().NoError(err)
	s.Equal(10.0, found.Amount)
}

func (s *TransactionStoreSuite) TestSparseUpdate() {
	tx := s.createExpense(10, day(2025, 8, 1), nil)

	updated, err := s.store.Transactions.Update(s.user.ID, tx.ID, map[string]interface{}{
		"amount": 42.5,
	})
	s.Require().NoError(err)
	s.Equal(42.5, updated.Amount)
	s.Equal("test expense", updated.Description, "untouched fields keep their values")

	_, err = s.store.Transactions.Update(s.user.ID, tx.ID, nil)
	s.ErrorIs(err, ErrNoUpdates)
}

func (s *TransactionStoreSuite) TestDeleteReturnsRow() {
	tx := s.createExpense(10, day(2025, 8, 1), nil)

	deleted, err := s.store.Transactions.Delete(s.user.ID, tx.ID)
	s.Require().NoError(err)
	s.Equal(tx.ID, deleted.ID)

	_, err = s.store.Transactions.FindByID(s.user.ID, tx.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *TransactionStoreSuite) TestFindByUserOrdersByDateDesc() {
	s.createExpense(1, day(2025, 8, 1), nil)
	s.createExpense(2, day(2025, 8, 15), nil)
	s.createExpense(3, day(2025, 8, 7), nil)

	txs, err := s.store.Transactions.FindByUser(s.user.ID, models.TypeExpense, 50, 0)
	s.Require().NoError(err)
	s.Require().Len(txs, 3)
	s.Equal(2.0, txs[0].Amount)
	s.Equal(3.0, txs[1].Amount)
	s.Equal(1.0, txs[2].Amount)
}

func (s *TransactionStoreSuite) TestFindWithFilters() {
	food, err := s.store.Categories.Create(s.user.ID, "Food", models.TypeExpense)
	s.Require().NoError(err)
	travel, err := s.store.Categories.Create(s.user.ID, "Travel", models.TypeExpense)
	s.Require().NoError(err)

	s.createExpense(10, day(2025, 8, 1), &food.ID)
	s.createExpense(20, day(2025, 8, 10), &travel.ID)
	s.createExpense(30, day(2025, 9, 1), &food.ID)

	start := day(2025, 8, 1).Add(-12 * time.Hour)
	end := day(2025, 8, 31)

	// Date range only.
	txs, err := s.store.Transactions.FindWithFilters(s.user.ID, TransactionFilter{
		Type: models.TypeExpense, Start: &start, End: &end,
	})
	s.Require().NoError(err)
	s.Len(txs, 2)

	// Category substring, case-insensitive.
	txs, err = s.store.Transactions.FindWithFilters(s.user.ID, TransactionFilter{
		Type: models.TypeExpense, Category: "foo",
	})
	s.Require().NoError(err)
	s.Require().Len(txs, 2)
	for _, tx := range txs {
		s.Equal(food.ID, *tx.CategoryID)
	}

	// Foreign user matches nothing.
	txs, err = s.store.Transactions.FindWithFilters(s.other.ID, TransactionFilter{Type: models.TypeExpense})
	s.Require().NoError(err)
	s.Empty(txs)
}

func (s *TransactionStoreSuite) TestFindWithFiltersExpenseType() {
	tx := &models.Transaction{
		UserID:      s.user.ID,
		Amount:      100,
		Type:        models.TypeExpense,
		Date:        day(2025, 8, 3),
		ExpenseType: models.ExpenseRecurring,
	}
	start := day(2025, 8, 1)
	tx.StartDate = &start
	s.Require().NoError(s.store.Transactions.Create(tx))
	s.createExpense(10, day(2025, 8, 4), nil)

	txs, err := s.store.Transactions.FindWithFilters(s.user.ID, TransactionFilter{
		Type: models.TypeExpense, ExpenseType: models.ExpenseRecurring,
	})
	s.Require().NoError(err)
	s.Require().Len(txs, 1)
	s.Equal(100.0, txs[0].Amount)
}

func (s *TransactionStoreSuite) TestFindUncategorized() {
	food, err := s.store.Categories.Create(s.user.ID, "Food", models.TypeExpense)
	s.Require().NoError(err)
	s.createExpense(10, day(2025, 8, 1), &food.ID)
	s.createExpense(20, day(2025, 8, 2), nil)

	txs, err := s.store.Transactions.FindUncategorized(s.user.ID, 50)
	s.Require().NoError(err)
	s.Require().Len(txs, 1)
	s.Equal(20.0, txs[0].Amount)
}

func TestTransactionStoreSuite(t *testing.T) {
	suite.Run(t, new(TransactionStoreSuite))
}
