package repositories

import (
	"errors"
	"fmt"

	"budgetvault/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrDescriptionMappingNotFound = errors.New("description mapping not found")
	ErrAccountMappingNotFound     = errors.New("account mapping not found")
)

// mappingRepository implements MappingRepositoryInterface
type mappingRepository struct {
	db *gorm.DB
}

// NewMappingRepository creates a new mapping repository
func NewMappingRepository(db *gorm.DB) MappingRepositoryInterface {
	return &mappingRepository{
		db: db,
	}
}

// GetAllDescriptions retrieves every description mapping
func (r *mappingRepository) GetAllDescriptions() ([]models.DescriptionMapping, error) {
	var mappings []models.DescriptionMapping
	if err := r.db.Order("description ASC").Find(&mappings).Error; err != nil {
		return nil, fmt.Errorf("failed to get description mappings: %w", err)
	}
	return mappings, nil
}

// GetDescription retrieves one description mapping by its normalized key
func (r *mappingRepository) GetDescription(description string) (*models.DescriptionMapping, error) {
	var mapping models.DescriptionMapping
	key := models.NormalizeDescription(description)
	if err := r.db.First(&mapping, "description = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDescriptionMappingNotFound
		}
		return nil, fmt.Errorf("failed to get description mapping: %w", err)
	}
	return &mapping, nil
}

// SetDescription upserts a description mapping keyed on the normalized
// description, keeping the at-most-one-mapping-per-description invariant.
func (r *mappingRepository) SetDescription(description, encCategoryName, encPayeeName string) error {
	mapping := models.DescriptionMapping{
		Description:           models.NormalizeDescription(description),
		EncryptedCategoryName: encCategoryName,
		EncryptedPayeeName:    encPayeeName,
	}
	if err := mapping.Validate(); err != nil {
		return fmt.Errorf("invalid description mapping: %w", err)
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "description"}},
		DoUpdates: clause.AssignmentColumns([]string{"encrypted_category_name", "encrypted_payee_name", "updated_at"}),
	}).Create(&mapping).Error
	if err != nil {
		return fmt.Errorf("failed to set description mapping: %w", err)
	}
	return nil
}

// DeleteDescription removes a description mapping
func (r *mappingRepository) DeleteDescription(description string) error {
	key := models.NormalizeDescription(description)
	result := r.db.Delete(&models.DescriptionMapping{}, "description = ?", key)
	if result.Error != nil {
		return fmt.Errorf("failed to delete description mapping: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDescriptionMappingNotFound
	}
	return nil
}

// GetAllAccounts retrieves every account mapping
func (r *mappingRepository) GetAllAccounts() ([]models.AccountMapping, error) {
	var mappings []models.AccountMapping
	if err := r.db.Order("account_number ASC").Find(&mappings).Error; err != nil {
		return nil, fmt.Errorf("failed to get account mappings: %w", err)
	}
	return mappings, nil
}

// GetAccount retrieves one account mapping
func (r *mappingRepository) GetAccount(accountNumber string) (*models.AccountMapping, error) {
	var mapping models.AccountMapping
	if err := r.db.First(&mapping, "account_number = ?", accountNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountMappingNotFound
		}
		return nil, fmt.Errorf("failed to get account mapping: %w", err)
	}
	return &mapping, nil
}

// SetAccount upserts an account mapping
func (r *mappingRepository) SetAccount(accountNumber, encName string) error {
	mapping := models.AccountMapping{
		AccountNumber: accountNumber,
		EncryptedName: encName,
	}
	if err := mapping.Validate(); err != nil {
		return fmt.Errorf("invalid account mapping: %w", err)
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"encrypted_name", "updated_at"}),
	}).Create(&mapping).Error
	if err != nil {
		return fmt.Errorf("failed to set account mapping: %w", err)
	}
	return nil
}

// ClearDescriptions removes all description mappings
func (r *mappingRepository) ClearDescriptions() error {
	if err := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.DescriptionMapping{}).Error; err != nil {
		return fmt.Errorf("failed to clear description mappings: %w", err)
	}
	return nil
}

// ClearAccounts removes all account mappings
func (r *mappingRepository) ClearAccounts() error {
	if err := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.AccountMapping{}).Error; err != nil {
		return fmt.Errorf("failed to clear account mappings: %w", err)
	}
	return nil
}
