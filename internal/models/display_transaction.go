package models

import "github.com/shopspring/decimal"

// DisplayTransaction is a fully decrypted, display-ready transaction as
// produced by the preload path: plaintext fields plus resolved category and
// payee names.
type DisplayTransaction struct {
	ID           uint            `json:"id"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Account      string          `json:"account"`
	AccountName  string          `json:"account_name,omitempty"`
	Note         string          `json:"note,omitempty"`
	CategoryID   *uint           `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	PayeeID      *uint           `json:"payee_id"`
	PayeeName    string          `json:"payee_name,omitempty"`
	IsTransfer   bool            `json:"is_transfer"`
	AutoMapped   bool            `json:"auto_mapped"`
}

// ImportResult reports what a commit actually persisted. UncategorizedCount
// counts imported records that ended up with neither a category nor the
// transfer marker; callers surface the discrepancy instead of dropping it.
type ImportResult struct {
	Imported           []Transaction `json:"imported"`
	UncategorizedCount int           `json:"uncategorized_count"`
}
