package dto

import (
	"budgetvault/internal/models"
)

// ParseImportRequest starts a review session from raw CSV text
type ParseImportRequest struct {
	FormatID string `json:"format_id" validate:"required"`
	CSV      string `json:"csv" validate:"required"`
}

// FormatInfo describes one selectable import format
type FormatInfo struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Header []string `json:"header"`
}

// ListFormatsResponse lists the registered import formats
type ListFormatsResponse struct {
	Formats []FormatInfo `json:"formats"`
}

// ReviewQuery carries the filter and sort parameters for the review view
type ReviewQuery struct {
	Search         string `query:"search"`
	HideDuplicates bool   `query:"hide_duplicates"`
	OnlyUnmapped   bool   `query:"only_unmapped"`
	OnlyAutoMapped bool   `query:"only_auto_mapped"`
	AmountMin      string `query:"amount_min"`
	AmountMax      string `query:"amount_max"`
	DateStart      string `query:"date_start" validate:"omitempty,iso_date"`
	DateEnd        string `query:"date_end" validate:"omitempty,iso_date"`
	SortField      string `query:"sort_field" validate:"omitempty,sort_field"`
	SortOrder      string `query:"sort_order" validate:"omitempty,sort_order"`
}

// ReviewItemView is one review row as shown to the user
type ReviewItemView struct {
	Index       int               `json:"index"`
	Date        string            `json:"date"`
	Amount      string            `json:"amount"`
	Description string            `json:"description"`
	Account     string            `json:"account"`
	RawFields   map[string]string `json:"raw_fields,omitempty"`
	IsDuplicate bool              `json:"is_duplicate"`
	Skip        bool              `json:"skip"`
	SaveMapping bool              `json:"save_mapping"`
	Resolution  ResolutionView    `json:"resolution"`
}

// ResolutionView is the display form of a resolution
type ResolutionView struct {
	State      string `json:"state"` // "unresolved", "category", or "transfer"
	CategoryID *uint  `json:"category_id,omitempty"`
	PayeeID    *uint  `json:"payee_id,omitempty"`
	AutoMapped bool   `json:"auto_mapped"`
}

// ReviewResponse is the review working set under the current filters
type ReviewResponse struct {
	Items        []ReviewItemView `json:"items"`
	TotalItems   int              `json:"total_items"`
	VisibleItems int              `json:"visible_items"`
	Duplicates   int              `json:"duplicates"`
	Unresolved   int              `json:"unresolved"`
}

// ReviewCommandRequest is one user decision against the review session
type ReviewCommandRequest struct {
	Action     string `json:"action" validate:"required,oneof=skip unskip set_category set_transfer bulk_skip bulk_set_category save_mapping"`
	Index      int    `json:"index"`
	CategoryID uint   `json:"category_id"`

	// Bulk actions apply to the rows visible under these filters
	Filters ReviewQuery `json:"filters"`
}

// CommitImportResponse reports the outcome of committing the session
type CommitImportResponse struct {
	Imported           int `json:"imported"`
	UncategorizedCount int `json:"uncategorized_count"`
	MappingsSaved      int `json:"mappings_saved"`
}

// ToFilters converts the query form to the model filter set.
// Unparseable amount bounds are treated as unset.
func (q ReviewQuery) ToFilters() models.ReviewFilters {
	filters := models.ReviewFilters{
		Search:         q.Search,
		HideDuplicates: q.HideDuplicates,
		OnlyUnmapped:   q.OnlyUnmapped,
		OnlyAutoMapped: q.OnlyAutoMapped,
		DateStart:      q.DateStart,
		DateEnd:        q.DateEnd,
	}
	if min, err := parseAmount(q.AmountMin); err == nil {
		filters.AmountMin = min
	}
	if max, err := parseAmount(q.AmountMax); err == nil {
		filters.AmountMax = max
	}
	return filters
}
