package dto

import "budgetvault/internal/models"

// ListTransactionsResponse is the decrypted transaction listing
type ListTransactionsResponse struct {
	Transactions []models.DisplayTransaction `json:"transactions"`
	Total        int                         `json:"total"`
	// Uncategorized counts transactions with neither a category nor a
	// transfer marker, the ones the review screen should surface first.
	Uncategorized int64 `json:"uncategorized"`
}

// UpdateTransactionRequest changes the review-editable fields of one transaction
type UpdateTransactionRequest struct {
	CategoryID *uint   `json:"category_id"`
	PayeeID    *uint   `json:"payee_id"`
	Note       *string `json:"note" validate:"omitempty,max=500"`
	Transfer   *bool   `json:"transfer"`
}

// SeedRequest generates and imports sample data (development only)
type SeedRequest struct {
	Rows int `json:"rows" validate:"omitempty,min=1,max=5000"`
}

// SeedResponse reports what the seed created
type SeedResponse struct {
	Categories int `json:"categories"`
	Imported   int `json:"imported"`
}
