package models

import (
	"errors"
	"regexp"
	"time"
)

var (
	ErrBudgetMonthInvalid  = errors.New("budget month must be in YYYY-MM form")
	ErrBudgetAmountEmpty   = errors.New("budget amount ciphertext is required")
	ErrBudgetCategoryEmpty = errors.New("budget category is required")
)

var monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// CategoryBudget is a per-month spending limit for one category. The amount
// is stored encrypted; the (category, month) pair is the natural key.
type CategoryBudget struct {
	CategoryID      uint      `gorm:"primaryKey" json:"category_id"`
	Month           string    `gorm:"primaryKey;type:varchar(7)" json:"month"`
	EncryptedAmount string    `gorm:"column:encrypted_amount;type:text;not null" json:"encrypted_amount"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

// Validate validates the category budget fields
func (b *CategoryBudget) Validate() error {
	if b.CategoryID == 0 {
		return ErrBudgetCategoryEmpty
	}
	if !IsValidMonthKey(b.Month) {
		return ErrBudgetMonthInvalid
	}
	if b.EncryptedAmount == "" {
		return ErrBudgetAmountEmpty
	}
	return nil
}

// TableName returns the table name for CategoryBudget
func (b *CategoryBudget) TableName() string {
	return "category_budgets"
}

// IsValidMonthKey checks whether s is a YYYY-MM month key
func IsValidMonthKey(s string) bool {
	return monthKeyPattern.MatchString(s)
}
