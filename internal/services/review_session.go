package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"budgetvault/internal/models"
)

var (
	ErrItemIndexOutOfRange = errors.New("review item index out of range")
	ErrCategoryRequired    = errors.New("a category is required")
	ErrInvalidSortField    = errors.New("invalid sort field")
	ErrInvalidSortOrder    = errors.New("invalid sort order")
)

// ReviewSession owns the working set of one CSV import: the review items and
// the session override table that lets one resolution decision apply to every
// row sharing a description within this import. Each session owns its own
// state; nothing here is shared between imports.
type ReviewSession struct {
	items     []models.ReviewItem
	overrides map[string]models.Resolution
}

// NewReviewSession creates a session over parsed, duplicate-marked, resolved
// items. Duplicates arrive pre-checked as skip; the user may still toggle
// skip, but commit excludes duplicates regardless.
func NewReviewSession(items []models.ReviewItem) *ReviewSession {
	for i := range items {
		if items[i].IsDuplicate {
			items[i].Skip = true
		}
	}
	return &ReviewSession{
		items:     items,
		overrides: make(map[string]models.Resolution),
	}
}

// Items returns the full working set in its current order
func (s *ReviewSession) Items() []models.ReviewItem {
	return s.items
}

// Overrides returns the session override table keyed by normalized description
func (s *ReviewSession) Overrides() map[string]models.Resolution {
	return s.overrides
}

// ApplyFilters returns pointers to the currently visible items. The
// predicates are independent and AND together in a fixed order: search,
// duplicate filter, unmapped filter, auto filter, amount-min, amount-max,
// date-start, date-end. An unset filter always passes.
func (s *ReviewSession) ApplyFilters(filters models.ReviewFilters) []*models.ReviewItem {
	visible := make([]*models.ReviewItem, 0, len(s.items))
	for i := range s.items {
		if s.matches(&s.items[i], filters) {
			visible = append(visible, &s.items[i])
		}
	}
	return visible
}

func (s *ReviewSession) matches(item *models.ReviewItem, f models.ReviewFilters) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		haystack := strings.ToLower(item.Row.Description + " " + item.Row.Account)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	if f.HideDuplicates && item.IsDuplicate {
		return false
	}
	if f.OnlyUnmapped && item.Suggested.IsResolved() {
		return false
	}
	if f.OnlyAutoMapped && !item.Suggested.IsResolved() {
		return false
	}
	if f.AmountMin != nil && item.Row.Amount.Abs().LessThan(*f.AmountMin) {
		return false
	}
	if f.AmountMax != nil && item.Row.Amount.Abs().GreaterThan(*f.AmountMax) {
		return false
	}
	if f.DateStart != "" && item.Row.Date < f.DateStart {
		return false
	}
	if f.DateEnd != "" && item.Row.Date > f.DateEnd {
		return false
	}
	return true
}

// Sort stably reorders the working set. Amounts compare by absolute value so
// a -50 and a +50 end up adjacent; string fields compare case-insensitively.
func (s *ReviewSession) Sort(field, order string) error {
	if !models.IsValidReviewSortField(field) {
		return fmt.Errorf("%w: %q", ErrInvalidSortField, field)
	}
	if !models.IsValidSortOrder(order) {
		return fmt.Errorf("%w: %q", ErrInvalidSortOrder, order)
	}

	less := func(a, b *models.ReviewItem) bool {
		switch field {
		case models.ReviewSortAmount:
			return a.Row.Amount.Abs().LessThan(b.Row.Amount.Abs())
		case models.ReviewSortDescription:
			return strings.ToLower(a.Row.Description) < strings.ToLower(b.Row.Description)
		case models.ReviewSortAccount:
			return strings.ToLower(a.Row.Account) < strings.ToLower(b.Row.Account)
		default:
			return a.Row.Date < b.Row.Date
		}
	}

	sort.SliceStable(s.items, func(i, j int) bool {
		if order == models.SortOrderDesc {
			return less(&s.items[j], &s.items[i])
		}
		return less(&s.items[i], &s.items[j])
	})
	return nil
}

// SetSkip toggles the skip flag on one item
func (s *ReviewSession) SetSkip(index int, skip bool) error {
	if index < 0 || index >= len(s.items) {
		return ErrItemIndexOutOfRange
	}
	s.items[index].Skip = skip
	return nil
}

// SetCategory applies a user resolution to one item
func (s *ReviewSession) SetCategory(index int, resolution models.Resolution) error {
	if index < 0 || index >= len(s.items) {
		return ErrItemIndexOutOfRange
	}
	if !resolution.IsResolved() {
		return ErrCategoryRequired
	}
	s.items[index].Override = resolution
	return nil
}

// BulkSkip sets skip on every currently visible item
func (s *ReviewSession) BulkSkip(filters models.ReviewFilters) int {
	visible := s.ApplyFilters(filters)
	for _, item := range visible {
		item.Skip = true
	}
	return len(visible)
}

// BulkSetCategory resolves every visible, non-duplicate, non-skipped item to
// the given resolution and records a session override for each affected
// description. Rows hidden by the current filters that share a description
// pick up the suggestion too, so a later filter change shows them resolved.
func (s *ReviewSession) BulkSetCategory(filters models.ReviewFilters, resolution models.Resolution) (int, error) {
	if !resolution.IsResolved() {
		return 0, ErrCategoryRequired
	}

	visible := s.ApplyFilters(filters)
	affected := 0
	for _, item := range visible {
		if item.IsDuplicate || item.Skip {
			continue
		}
		item.Override = resolution
		item.Suggested = resolution
		s.overrides[item.Row.NormalizedDescription()] = resolution
		affected++
	}

	s.propagateOverrides()
	return affected, nil
}

// SaveAsMapping records a session override for one item's description based
// on its effective resolution. Persisting a DescriptionMapping is a separate
// explicit action; this only affects the current session.
func (s *ReviewSession) SaveAsMapping(index int) error {
	if index < 0 || index >= len(s.items) {
		return ErrItemIndexOutOfRange
	}

	item := &s.items[index]
	resolution := item.EffectiveResolution()
	if !resolution.IsResolved() {
		return ErrCategoryRequired
	}

	item.SaveMapping = true
	s.overrides[item.Row.NormalizedDescription()] = resolution
	s.propagateOverrides()
	return nil
}

// propagateOverrides pushes session overrides into the suggestions of rows
// that were not directly touched, so same-description rows display as
// auto-resolved wherever they surface.
func (s *ReviewSession) propagateOverrides() {
	for i := range s.items {
		item := &s.items[i]
		if item.Suggested.IsResolved() {
			continue
		}
		if resolution, exists := s.overrides[item.Row.NormalizedDescription()]; exists {
			item.Suggested = resolution
		}
	}
}
