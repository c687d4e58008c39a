package repositories

import (
	"errors"
	"fmt"

	"budgetvault/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrPayeeNotFound    = errors.New("payee not found")
)

// categoryRepository implements CategoryRepositoryInterface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{
		db: db,
	}
}

// GetAll retrieves every category
func (r *categoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a category by ID
func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// Save creates or updates a category and returns its id
func (r *categoryRepository) Save(category *models.Category) (uint, error) {
	if err := category.Validate(); err != nil {
		return 0, fmt.Errorf("invalid category: %w", err)
	}
	if err := r.db.Save(category).Error; err != nil {
		return 0, fmt.Errorf("failed to save category: %w", err)
	}
	return category.ID, nil
}

// Delete removes a category by ID. Orphan checking is the caller's
// responsibility; the service layer refuses to delete a referenced category.
func (r *categoryRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
