package models

import (
	"github.com/shopspring/decimal"
)

// ResolutionKind discriminates the outcome of mapping resolution.
type ResolutionKind int

const (
	// ResolutionUnresolved means no mapping applied; the row needs manual review.
	ResolutionUnresolved ResolutionKind = iota
	// ResolutionCategory carries a concrete category id.
	ResolutionCategory
	// ResolutionTransfer marks a between-accounts movement.
	ResolutionTransfer
)

// Resolution is the tagged result of resolving a description against the
// mapping table. CategoryID is meaningful only when Kind is ResolutionCategory.
type Resolution struct {
	Kind       ResolutionKind `json:"kind"`
	CategoryID uint           `json:"category_id,omitempty"`
	PayeeID    *uint          `json:"payee_id,omitempty"`
}

// Unresolved returns the zero resolution.
func Unresolved() Resolution {
	return Resolution{Kind: ResolutionUnresolved}
}

// CategoryResolution returns a resolution pointing at a category.
func CategoryResolution(categoryID uint) Resolution {
	return Resolution{Kind: ResolutionCategory, CategoryID: categoryID}
}

// TransferResolution returns the transfer-sentinel resolution.
func TransferResolution() Resolution {
	return Resolution{Kind: ResolutionTransfer}
}

// IsResolved reports whether the resolution carries a category or the
// transfer sentinel.
func (r Resolution) IsResolved() bool {
	return r.Kind != ResolutionUnresolved
}

// NormalizedRow is one CSV line after format parsing: canonical date,
// signed amount (debits negative), and the original column values preserved
// for display. Immutable after parsing; review-time decisions live on the
// wrapping ReviewItem.
type NormalizedRow struct {
	Date        string            `json:"date"`
	Amount      decimal.Decimal   `json:"amount"`
	Description string            `json:"description"`
	Account     string            `json:"account"`
	RawFields   map[string]string `json:"raw_fields,omitempty"`
}

// NormalizedDescription returns the row description in mapping-lookup form.
func (r NormalizedRow) NormalizedDescription() string {
	return NormalizeDescription(r.Description)
}

// ReviewItem wraps a NormalizedRow with its per-row review state.
// Suggested is what resolution produced; Override is what the user picked.
// EffectiveResolution merges the two.
type ReviewItem struct {
	Row         NormalizedRow `json:"row"`
	IsDuplicate bool          `json:"is_duplicate"`
	Suggested   Resolution    `json:"suggested"`
	Override    Resolution    `json:"override"`
	Skip        bool          `json:"skip"`
	SaveMapping bool          `json:"save_mapping"`
}

// EffectiveResolution returns the user override when set, otherwise the
// suggestion from mapping resolution.
func (i *ReviewItem) EffectiveResolution() Resolution {
	if i.Override.IsResolved() {
		return i.Override
	}
	return i.Suggested
}

// DecryptedTransaction is a transaction with its sensitive fields already
// decrypted, as consumed by duplicate detection.
type DecryptedTransaction struct {
	ID          uint
	Date        string
	Amount      decimal.Decimal
	Description string
	Account     string
}
