package models

import (
	"errors"
	"time"
)

const (
	CategoryTypeIncome   = "income"
	CategoryTypeExpense  = "expense"
	CategoryTypeSaving   = "saving"
	CategoryTypeTransfer = "transfer"
)

// TransferCategoryName is the reserved category name that marks a description
// mapping as a between-accounts movement rather than a real category.
const TransferCategoryName = "Transfer"

var (
	ErrInvalidCategoryType = errors.New("invalid category type")
	ErrCategoryNameEmpty   = errors.New("category name ciphertext is required")
)

// Category represents a budget category. Name and monthly limit are stored
// encrypted; the storage layer never sees their plaintext.
type Category struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EncryptedName  string    `gorm:"column:encrypted_name;type:text;not null" json:"encrypted_name"`
	EncryptedLimit string    `gorm:"column:encrypted_limit;type:text" json:"encrypted_limit"`
	Type           string    `gorm:"type:varchar(20);not null;default:'expense'" json:"type"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

// Validate validates the category fields
func (c *Category) Validate() error {
	if c.EncryptedName == "" {
		return ErrCategoryNameEmpty
	}
	if !IsValidCategoryType(c.Type) {
		return ErrInvalidCategoryType
	}
	return nil
}

// TableName returns the table name for Category
func (c *Category) TableName() string {
	return "categories"
}

// IsValidCategoryType checks if the category type is valid
func IsValidCategoryType(categoryType string) bool {
	switch categoryType {
	case CategoryTypeIncome, CategoryTypeExpense, CategoryTypeSaving, CategoryTypeTransfer:
		return true
	default:
		return false
	}
}
