package services

import (
	"fmt"

	"budgetvault/internal/models"
)

// ReviewCommand is a single user decision applied to a review session. The
// UI layer submits commands instead of mutating session state directly.
type ReviewCommand interface {
	Apply(session *ReviewSession) error
}

// SkipItem sets the skip flag on one item
type SkipItem struct {
	Index int  `json:"index"`
	Skip  bool `json:"skip"`
}

func (c SkipItem) Apply(session *ReviewSession) error {
	return session.SetSkip(c.Index, c.Skip)
}

// SetCategory resolves one item to a category or the transfer sentinel
type SetCategory struct {
	Index      int  `json:"index"`
	CategoryID uint `json:"category_id"`
	Transfer   bool `json:"transfer"`
}

func (c SetCategory) Apply(session *ReviewSession) error {
	return session.SetCategory(c.Index, c.resolution())
}

func (c SetCategory) resolution() models.Resolution {
	if c.Transfer {
		return models.TransferResolution()
	}
	return models.CategoryResolution(c.CategoryID)
}

// BulkSkip skips every item visible under the given filters
type BulkSkip struct {
	Filters models.ReviewFilters `json:"filters"`
}

func (c BulkSkip) Apply(session *ReviewSession) error {
	session.BulkSkip(c.Filters)
	return nil
}

// BulkSetCategory resolves every visible, non-duplicate, non-skipped item
type BulkSetCategory struct {
	Filters    models.ReviewFilters `json:"filters"`
	CategoryID uint                 `json:"category_id"`
	Transfer   bool                 `json:"transfer"`
}

func (c BulkSetCategory) Apply(session *ReviewSession) error {
	resolution := models.CategoryResolution(c.CategoryID)
	if c.Transfer {
		resolution = models.TransferResolution()
	}
	if _, err := session.BulkSetCategory(c.Filters, resolution); err != nil {
		return fmt.Errorf("bulk set category: %w", err)
	}
	return nil
}

// SaveAsMapping records a session override from one item's resolution
type SaveAsMapping struct {
	Index int `json:"index"`
}

func (c SaveAsMapping) Apply(session *ReviewSession) error {
	return session.SaveAsMapping(c.Index)
}
