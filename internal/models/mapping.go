package models

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMappingDescriptionEmpty   = errors.New("mapping description is required")
	ErrMappingCategoryEmpty      = errors.New("mapping category ciphertext is required")
	ErrMappingAccountNumberEmpty = errors.New("account number is required")
)

// DescriptionMapping is a learned rule associating a transaction description
// with a category (and optionally a payee). The description doubles as the
// primary key and is kept in plaintext so lookups work without decryption;
// it is stored in normalized form. The category name ciphertext may decrypt
// to the literal "Transfer" sentinel.
type DescriptionMapping struct {
	Description           string    `gorm:"primaryKey;type:text" json:"description"`
	EncryptedCategoryName string    `gorm:"column:encrypted_category_name;type:text;not null" json:"encrypted_category_name"`
	EncryptedPayeeName    string    `gorm:"column:encrypted_payee_name;type:text" json:"encrypted_payee_name"`
	CreatedAt             time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time `gorm:"not null" json:"updated_at"`
}

// Validate validates the description mapping fields
func (m *DescriptionMapping) Validate() error {
	if strings.TrimSpace(m.Description) == "" {
		return ErrMappingDescriptionEmpty
	}
	if m.EncryptedCategoryName == "" {
		return ErrMappingCategoryEmpty
	}
	return nil
}

// TableName returns the table name for DescriptionMapping
func (m *DescriptionMapping) TableName() string {
	return "description_mappings"
}

// AccountMapping gives a bank account number a friendly display name. One
// record exists per account number observed in any transaction or import row;
// an empty encrypted name means the account has not been named yet.
type AccountMapping struct {
	AccountNumber string    `gorm:"primaryKey;type:varchar(64)" json:"account_number"`
	EncryptedName string    `gorm:"column:encrypted_name;type:text" json:"encrypted_name"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// Validate validates the account mapping fields
func (m *AccountMapping) Validate() error {
	if strings.TrimSpace(m.AccountNumber) == "" {
		return ErrMappingAccountNumberEmpty
	}
	return nil
}

// TableName returns the table name for AccountMapping
func (m *AccountMapping) TableName() string {
	return "account_mappings"
}

// NormalizeDescription canonicalizes a description for mapping lookups.
// Lookup and storage must agree on this form or learned mappings stop firing.
func NormalizeDescription(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}
