package repositories

import (
	"errors"
	"fmt"

	"budgetvault/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrBudgetNotFound = errors.New("category budget not found")

// budgetRepository implements BudgetRepositoryInterface
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepositoryInterface {
	return &budgetRepository{
		db: db,
	}
}

// GetCategoryBudget retrieves the budget for a category in a given month
func (r *budgetRepository) GetCategoryBudget(categoryID uint, month string) (*models.CategoryBudget, error) {
	var budget models.CategoryBudget
	if err := r.db.First(&budget, "category_id = ? AND month = ?", categoryID, month).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, fmt.Errorf("failed to get category budget: %w", err)
	}
	return &budget, nil
}

// SetCategoryBudget upserts the budget for a category in a given month
func (r *budgetRepository) SetCategoryBudget(categoryID uint, month, encAmount string) error {
	budget := models.CategoryBudget{
		CategoryID:      categoryID,
		Month:           month,
		EncryptedAmount: encAmount,
	}
	if err := budget.Validate(); err != nil {
		return fmt.Errorf("invalid category budget: %w", err)
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"encrypted_amount", "updated_at"}),
	}).Create(&budget).Error
	if err != nil {
		return fmt.Errorf("failed to set category budget: %w", err)
	}
	return nil
}

// GetCategoryBudgetsForMonth retrieves all budgets for a month
func (r *budgetRepository) GetCategoryBudgetsForMonth(month string) ([]models.CategoryBudget, error) {
	var budgets []models.CategoryBudget
	if err := r.db.Where("month = ?", month).
		Order("category_id ASC").
		Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to get budgets for month: %w", err)
	}
	return budgets, nil
}
