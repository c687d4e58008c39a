package models

import (
	"errors"
	"time"
)

var (
	ErrTransactionDateEmpty        = errors.New("transaction date ciphertext is required")
	ErrTransactionAmountEmpty      = errors.New("transaction amount ciphertext is required")
	ErrTransactionDescriptionEmpty = errors.New("transaction description ciphertext is required")
)

// Transaction is a persisted ledger entry. Every sensitive field is stored
// encrypted under the encrypted_* column convention; CategoryID and PayeeID
// are plaintext foreign keys so queries can filter without decrypting.
//
// EncryptedLinkedTransaction is a nullable column whose mere presence (even
// holding the ciphertext of an empty string) marks the transaction as a
// transfer. A nil pointer means the column was never set and the transaction
// is an ordinary income/expense entry.
type Transaction struct {
	ID                         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EncryptedDate              string    `gorm:"column:encrypted_date;type:text;not null" json:"encrypted_date"`
	EncryptedAmount            string    `gorm:"column:encrypted_amount;type:text;not null" json:"encrypted_amount"`
	EncryptedDescription       string    `gorm:"column:encrypted_description;type:text;not null" json:"encrypted_description"`
	EncryptedAccount           string    `gorm:"column:encrypted_account;type:text" json:"encrypted_account"`
	EncryptedNote              string    `gorm:"column:encrypted_note;type:text" json:"encrypted_note"`
	EncryptedLinkedTransaction *string   `gorm:"column:encrypted_linked_transaction;type:text" json:"encrypted_linked_transaction,omitempty"`
	CategoryID                 *uint     `gorm:"index" json:"category_id"`
	PayeeID                    *uint     `gorm:"index" json:"payee_id"`
	UseAutoCategory            bool      `gorm:"not null;default:false" json:"use_auto_category"`
	UseAutoPayee               bool      `gorm:"not null;default:false" json:"use_auto_payee"`
	CreatedAt                  time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt                  time.Time `gorm:"not null" json:"updated_at"`
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.EncryptedDate == "" {
		return ErrTransactionDateEmpty
	}
	if t.EncryptedAmount == "" {
		return ErrTransactionAmountEmpty
	}
	if t.EncryptedDescription == "" {
		return ErrTransactionDescriptionEmpty
	}
	return nil
}

// IsTransfer reports whether the transfer-marking column is present,
// regardless of what it decrypts to.
func (t *Transaction) IsTransfer() bool {
	return t.EncryptedLinkedTransaction != nil
}

// IsUncategorized reports whether the transaction has neither a category nor
// the transfer marker. An unlinked transfer (nil category, marker present) is
// not uncategorized.
func (t *Transaction) IsUncategorized() bool {
	return t.CategoryID == nil && !t.IsTransfer()
}

// MarkTransfer sets the transfer marker with the given linked-transaction
// ciphertext. An empty ciphertext still marks the transaction as a transfer.
func (t *Transaction) MarkTransfer(encryptedLinkedID string) {
	t.EncryptedLinkedTransaction = &encryptedLinkedID
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}
