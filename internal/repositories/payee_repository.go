package repositories

import (
	"errors"
	"fmt"

	"budgetvault/internal/models"

	"gorm.io/gorm"
)

// payeeRepository implements PayeeRepositoryInterface
type payeeRepository struct {
	db *gorm.DB
}

// NewPayeeRepository creates a new payee repository
func NewPayeeRepository(db *gorm.DB) PayeeRepositoryInterface {
	return &payeeRepository{
		db: db,
	}
}

// GetAll retrieves every payee
func (r *payeeRepository) GetAll() ([]models.Payee, error) {
	var payees []models.Payee
	if err := r.db.Order("id ASC").Find(&payees).Error; err != nil {
		return nil, fmt.Errorf("failed to get payees: %w", err)
	}
	return payees, nil
}

// GetByID retrieves a payee by ID
func (r *payeeRepository) GetByID(id uint) (*models.Payee, error) {
	var payee models.Payee
	if err := r.db.First(&payee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayeeNotFound
		}
		return nil, fmt.Errorf("failed to get payee: %w", err)
	}
	return &payee, nil
}

// Save creates or updates a payee and returns its id
func (r *payeeRepository) Save(payee *models.Payee) (uint, error) {
	if err := payee.Validate(); err != nil {
		return 0, fmt.Errorf("invalid payee: %w", err)
	}
	if err := r.db.Save(payee).Error; err != nil {
		return 0, fmt.Errorf("failed to save payee: %w", err)
	}
	return payee.ID, nil
}

// Delete removes a payee by ID
func (r *payeeRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Payee{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete payee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPayeeNotFound
	}
	return nil
}
