package models

import (
	"errors"
	"time"
)

var ErrPayeeNameEmpty = errors.New("payee name ciphertext is required")

// Payee represents a transaction counterparty. The name is stored encrypted.
type Payee struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EncryptedName string    `gorm:"column:encrypted_name;type:text;not null" json:"encrypted_name"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// Validate validates the payee fields
func (p *Payee) Validate() error {
	if p.EncryptedName == "" {
		return ErrPayeeNameEmpty
	}
	return nil
}

// TableName returns the table name for Payee
func (p *Payee) TableName() string {
	return "payees"
}
