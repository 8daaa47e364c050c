package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"expense-tracker-go-be/models"
)

// CategoryStore persists categories. Name uniqueness per user is checked
// case-insensitively here, before every create and rename, regardless of
// what the underlying schema enforces.
type CategoryStore struct {
	db *gorm.DB
}

// ListByUser returns all categories for a user, ordered by type then name.
func (s *CategoryStore) ListByUser(userID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Where("user_id = ?", userID).
		Order("type ASC").Order("name ASC").
		Find(&categories).Error
	return categories, err
}

// FindByID returns a category scoped to its owner, or ErrNotFound.
func (s *CategoryStore) FindByID(userID, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category. A name already used by the same user
// (case-insensitive) returns ErrDuplicateName.
func (s *CategoryStore) Create(userID uuid.UUID, name, categoryType string) (*models.Category, error) {
	taken, err := s.nameExists(userID, name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	category := &models.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Rename changes a category's name, re-checking the duplicate guard against
// every other category of the same user.
func (s *CategoryStore) Rename(userID, id uuid.UUID, name string) (*models.Category, error) {
	category, err := s.FindByID(userID, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.nameExists(userID, name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	category.Name = name
	if err := s.db.Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category unless any transaction of the same user still
// references it, in which case it returns ErrCategoryInUse.
func (s *CategoryStore) Delete(userID, id uuid.UUID) (*models.Category, error) {
	category, err := s.FindByID(userID, id)
	if err != nil {
		return nil, err
	}

	var count int64
	err = s.db.Model(&models.Transaction{}).
		Where("category_id = ? AND user_id = ?", id, userID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCategoryInUse
	}

	if err := s.db.Delete(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryStore) nameExists(userID uuid.UUID, name string, exclude uuid.UUID) (bool, error) {
	query := s.db.Model(&models.Category{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name)
	if exclude != uuid.Nil {
		query = query.Where("id <> ?", exclude)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
