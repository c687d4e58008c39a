package database

import (
	"testing"

	"budgetvault/internal/config"
	"budgetvault/internal/models"
	"budgetvault/internal/vault"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			Driver:         config.DriverSQLite,
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

// SetupTestVault returns a vault with a fixed test passphrase.
func SetupTestVault(t *testing.T) *vault.Vault {
	t.Helper()

	v, err := vault.New("test-passphrase", []byte("0123456789abcdef"))
	if err != nil {
		t.Fatalf("failed to create test vault: %v", err)
	}
	return v
}

func CreateTestCategory(t *testing.T, db *DB, v *vault.Vault, name, categoryType string) *models.Category {
	t.Helper()

	encName, err := v.Encrypt(name)
	if err != nil {
		t.Fatalf("failed to encrypt category name: %v", err)
	}
	encLimit, err := v.Encrypt("0")
	if err != nil {
		t.Fatalf("failed to encrypt category limit: %v", err)
	}

	category := &models.Category{
		EncryptedName:  encName,
		EncryptedLimit: encLimit,
		Type:           categoryType,
	}

	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}

	return category
}

func CreateTestPayee(t *testing.T, db *DB, v *vault.Vault, name string) *models.Payee {
	t.Helper()

	encName, err := v.Encrypt(name)
	if err != nil {
		t.Fatalf("failed to encrypt payee name: %v", err)
	}

	payee := &models.Payee{EncryptedName: encName}
	if err := db.Create(payee).Error; err != nil {
		t.Fatalf("failed to create test payee: %v", err)
	}

	return payee
}

func CreateTestTransaction(t *testing.T, db *DB, v *vault.Vault, date, amount, description, account string, categoryID *uint) *models.Transaction {
	t.Helper()

	encrypt := func(plaintext string) string {
		ciphertext, err := v.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("failed to encrypt transaction field: %v", err)
		}
		return ciphertext
	}

	txn := &models.Transaction{
		EncryptedDate:        encrypt(date),
		EncryptedAmount:      encrypt(amount),
		EncryptedDescription: encrypt(description),
		EncryptedAccount:     encrypt(account),
		CategoryID:           categoryID,
	}

	if err := db.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}

	return txn
}
