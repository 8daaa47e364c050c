package store

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"expense-tracker-go-be/models"
)

// newTestStore opens an in-memory database with the full schema.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(&models.User{}, &models.Account{}, &models.Category{}, &models.Transaction{})
	require.NoError(t, err, "failed to migrate test database")

	return New(db)
}

func createTestUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	user, err := s.Users.Create("tester", email, "hash")
	require.NoError(t, err)
	return user
}

// day builds a date at noon local time, clear of day boundaries.
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.Local)
}
