package repositories

import (
	"errors"
	"fmt"

	"budgetvault/internal/models"

	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction and returns its assigned id
func (r *transactionRepository) Create(transaction *models.Transaction) (uint, error) {
	if err := transaction.Validate(); err != nil {
		return 0, fmt.Errorf("invalid transaction: %w", err)
	}
	if err := r.db.Create(transaction).Error; err != nil {
		return 0, fmt.Errorf("failed to create transaction: %w", err)
	}
	return transaction.ID, nil
}

// GetByID retrieves a transaction by ID
func (r *transactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetAll retrieves every transaction ordered by insertion
func (r *transactionRepository) GetAll() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Order("id ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// GetByCategory retrieves transactions referencing a category
func (r *transactionRepository) GetByCategory(categoryID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("category_id = ?", categoryID).
		Order("id ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by category: %w", err)
	}
	return transactions, nil
}

// CountByCategory counts transactions referencing a category
func (r *transactionRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions by category: %w", err)
	}
	return count, nil
}

// CountByPayee counts transactions referencing a payee
func (r *transactionRepository) CountByPayee(payeeID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("payee_id = ?", payeeID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions by payee: %w", err)
	}
	return count, nil
}

// CountUncategorized counts transactions without a category that are not
// transfer-marked. The predicate matches the partial index
// idx_transactions_uncategorized.
func (r *transactionRepository) CountUncategorized() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("category_id IS NULL AND encrypted_linked_transaction IS NULL").
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count uncategorized transactions: %w", err)
	}
	return count, nil
}

// Update updates an existing transaction
func (r *transactionRepository) Update(transaction *models.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}
	result := r.db.Save(transaction)
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	return nil
}

// Delete removes a transaction by ID
func (r *transactionRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Transaction{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// BulkAdd persists all records in one database transaction
func (r *transactionRepository) BulkAdd(transactions []models.Transaction) (uint, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	for i := range transactions {
		if err := transactions[i].Validate(); err != nil {
			return 0, fmt.Errorf("invalid transaction at index %d: %w", i, err)
		}
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transactions).Error; err != nil {
			return fmt.Errorf("failed to bulk add transactions: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return transactions[len(transactions)-1].ID, nil
}

// Clear removes every transaction
func (r *transactionRepository) Clear() error {
	if err := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Transaction{}).Error; err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	return nil
}
