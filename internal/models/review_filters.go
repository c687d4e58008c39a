package models

import "github.com/shopspring/decimal"

// Sort fields for the review working set
const (
	ReviewSortDate        = "date"
	ReviewSortAmount      = "amount"
	ReviewSortDescription = "description"
	ReviewSortAccount     = "account"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// ReviewFilters are the independent predicates applied to the review working
// set. Every unset field is a no-op; set fields AND together.
type ReviewFilters struct {
	Search         string           `json:"search"`
	HideDuplicates bool             `json:"hide_duplicates"`
	OnlyUnmapped   bool             `json:"only_unmapped"`
	OnlyAutoMapped bool             `json:"only_auto_mapped"`
	AmountMin      *decimal.Decimal `json:"amount_min,omitempty"`
	AmountMax      *decimal.Decimal `json:"amount_max,omitempty"`
	DateStart      string           `json:"date_start,omitempty"`
	DateEnd        string           `json:"date_end,omitempty"`
}

// IsValidReviewSortField checks if the sort field is valid
func IsValidReviewSortField(field string) bool {
	switch field {
	case ReviewSortDate, ReviewSortAmount, ReviewSortDescription, ReviewSortAccount:
		return true
	default:
		return false
	}
}

// IsValidSortOrder checks if the sort order is valid
func IsValidSortOrder(order string) bool {
	return order == SortOrderAsc || order == SortOrderDesc
}
