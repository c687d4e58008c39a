package repositories

import (
	"fmt"

	"budgetvault/internal/models"

	"gorm.io/gorm"
)

// maintenanceRepository implements MaintenanceRepositoryInterface
type maintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository creates a new maintenance repository
func NewMaintenanceRepository(db *gorm.DB) MaintenanceRepositoryInterface {
	return &maintenanceRepository{
		db: db,
	}
}

// ClearTransactions removes every transaction
func (r *maintenanceRepository) ClearTransactions() error {
	return clearTables(r.db, &models.Transaction{})
}

// ClearMappings removes every description and account mapping
func (r *maintenanceRepository) ClearMappings() error {
	return clearTables(r.db, &models.DescriptionMapping{}, &models.AccountMapping{})
}

// ClearAllData removes every record in the store
func (r *maintenanceRepository) ClearAllData() error {
	return clearTables(r.db,
		&models.Transaction{},
		&models.DescriptionMapping{},
		&models.AccountMapping{},
		&models.CategoryBudget{},
		&models.Category{},
		&models.Payee{},
	)
}

func clearTables(db *gorm.DB, tables ...interface{}) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
				Delete(table).Error; err != nil {
				return fmt.Errorf("failed to clear table: %w", err)
			}
		}
		return nil
	})
}
