package repositories

import (
	"budgetvault/internal/models"
)

// TransactionRepositoryInterface defines the contract for transaction storage operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) (uint, error)
	GetByID(id uint) (*models.Transaction, error)
	GetAll() ([]models.Transaction, error)
	GetByCategory(categoryID uint) ([]models.Transaction, error)
	CountByCategory(categoryID uint) (int64, error)
	CountByPayee(payeeID uint) (int64, error)
	// CountUncategorized counts transactions with no category that are not
	// transfer-marked, i.e. the ones still waiting for a category.
	CountUncategorized() (int64, error)
	Update(transaction *models.Transaction) error
	Delete(id uint) error
	// BulkAdd persists all records in one database transaction and returns
	// the last assigned id. All-or-nothing: a failure persists no records.
	BulkAdd(transactions []models.Transaction) (uint, error)
	Clear() error
}

// CategoryRepositoryInterface defines the contract for category storage operations
type CategoryRepositoryInterface interface {
	GetAll() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	Save(category *models.Category) (uint, error)
	Delete(id uint) error
}

// PayeeRepositoryInterface defines the contract for payee storage operations
type PayeeRepositoryInterface interface {
	GetAll() ([]models.Payee, error)
	GetByID(id uint) (*models.Payee, error)
	Save(payee *models.Payee) (uint, error)
	Delete(id uint) error
}

// MappingRepositoryInterface defines the contract for description and account
// mapping storage. SetDescription and SetAccount are upserts keyed on the
// plaintext primary key.
type MappingRepositoryInterface interface {
	GetAllDescriptions() ([]models.DescriptionMapping, error)
	GetDescription(description string) (*models.DescriptionMapping, error)
	SetDescription(description, encCategoryName, encPayeeName string) error
	DeleteDescription(description string) error

	GetAllAccounts() ([]models.AccountMapping, error)
	GetAccount(accountNumber string) (*models.AccountMapping, error)
	SetAccount(accountNumber, encName string) error

	ClearDescriptions() error
	ClearAccounts() error
}

// BudgetRepositoryInterface defines the contract for category budget storage
type BudgetRepositoryInterface interface {
	GetCategoryBudget(categoryID uint, month string) (*models.CategoryBudget, error)
	SetCategoryBudget(categoryID uint, month, encAmount string) error
	GetCategoryBudgetsForMonth(month string) ([]models.CategoryBudget, error)
}

// MaintenanceRepositoryInterface defines destructive bulk operations over the
// whole store
type MaintenanceRepositoryInterface interface {
	ClearTransactions() error
	ClearMappings() error
	ClearAllData() error
}
