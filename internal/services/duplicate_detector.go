package services

import (
	"fmt"

	"budgetvault/internal/models"
)

// duplicateDetector implements DuplicateDetectorInterface
type duplicateDetector struct{}

// NewDuplicateDetector creates a new duplicate detector
func NewDuplicateDetector() DuplicateDetectorInterface {
	return &duplicateDetector{}
}

// MarkDuplicates flags rows whose (date, amount, description) already exists.
// The comparison is exact field equality with the description trimmed and
// lowercased; no fuzzy matching. Multiple matches still produce a single
// "duplicate" flag, never a link to a specific transaction.
func (d *duplicateDetector) MarkDuplicates(rows []models.NormalizedRow, existing []models.DecryptedTransaction) []bool {
	seen := make(map[string]struct{}, len(existing))
	for _, txn := range existing {
		seen[duplicateKey(txn.Date, txn.Amount.StringFixed(2), txn.Description)] = struct{}{}
	}

	flags := make([]bool, len(rows))
	for i, row := range rows {
		key := duplicateKey(row.Date, row.Amount.StringFixed(2), row.Description)
		_, flags[i] = seen[key]
	}
	return flags
}

func duplicateKey(date, amount, description string) string {
	return fmt.Sprintf("%s|%s|%s", date, amount, models.NormalizeDescription(description))
}
