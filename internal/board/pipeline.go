// Package board holds the client-side logic of the price board: the
// filter/sort pipeline, the application state container, form validation
// and the bulk-update edit tracker.
package board

import (
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/veggie-board/internal/model"
)

// SortField names what a sort directive acts on.
type SortField string

// Sort fields.
const (
	SortNone   SortField = ""
	SortPrice  SortField = "price"
	SortDate   SortField = "date"
	SortStatus SortField = "status"
)

// Sort orders and status modes share the directive's second slot.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
	ModeGood  = "good"
	ModeLow   = "low"
)

// SortDirective is the combined sort/status selector of the filter bar.
// A status directive filters instead of reordering.
type SortDirective struct {
	Field SortField
	Order string
}

// IsZero reports whether no directive is set.
func (d SortDirective) IsZero() bool {
	return d.Field == SortNone
}

// String renders the directive in its "field-order" form.
func (d SortDirective) String() string {
	if d.IsZero() {
		return ""
	}
	return string(d.Field) + "-" + d.Order
}

// Label is the human readable form shown in the filter bar.
func (d SortDirective) Label() string {
	for _, opt := range SortOptions {
		if opt.Directive == d {
			return opt.Label
		}
	}
	return "Default order"
}

// SortOption pairs a directive with its label.
type SortOption struct {
	Label     string
	Directive SortDirective
}

// SortOptions lists the selectable directives in display order.
var SortOptions = []SortOption{
	{Label: "Default order", Directive: SortDirective{}},
	{Label: "Price: Low to High", Directive: SortDirective{Field: SortPrice, Order: OrderAsc}},
	{Label: "Price: High to Low", Directive: SortDirective{Field: SortPrice, Order: OrderDesc}},
	{Label: "Date: Oldest First", Directive: SortDirective{Field: SortDate, Order: OrderAsc}},
	{Label: "Date: Newest First", Directive: SortDirective{Field: SortDate, Order: OrderDesc}},
	{Label: "Good Quality only", Directive: SortDirective{Field: SortStatus, Order: ModeGood}},
	{Label: "Low Quality only", Directive: SortDirective{Field: SortStatus, Order: ModeLow}},
}

// ParseSortDirective parses "price-asc", "date-desc", "status-low" and friends.
// Empty input yields the zero directive. Unknown fields are ignored.
func ParseSortDirective(s string) SortDirective {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return SortDirective{}
	}

	field, order, _ := strings.Cut(s, "-")
	switch SortField(field) {
	case SortPrice, SortDate, SortStatus:
		return SortDirective{Field: SortField(field), Order: order}
	default:
		return SortDirective{}
	}
}

// Criteria is a snapshot of the filter bar.
type Criteria struct {
	Search       string
	Vegetable    string
	Commissioner string
	Sort         SortDirective
}

// IsZero reports whether no filter, search or directive is active.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Apply derives the rendered view from the full entry list.
// The input slice is never modified; the result is always a fresh slice.
func Apply(entries []model.PriceEntry, c Criteria) []model.PriceEntry {
	result := make([]model.PriceEntry, 0, len(entries))

	search := strings.ToLower(c.Search)
	vegetable := model.NormalizeName(c.Vegetable)

	for _, entry := range entries {
		if search != "" &&
			!strings.Contains(strings.ToLower(entry.VegetableName), search) &&
			!strings.Contains(strings.ToLower(entry.CommissionerName), search) {
			continue
		}

		if vegetable != "" && entry.NormalizedVegetable() != vegetable {
			continue
		}

		if c.Commissioner != "" && entry.CommissionerName != c.Commissioner {
			continue
		}

		result = append(result, entry)
	}

	switch c.Sort.Field {
	case SortStatus:
		return filterStatus(result, c.Sort.Order)
	case SortPrice:
		sortStable(result, c.Sort.Order, func(e model.PriceEntry) float64 { return e.Price })
	case SortDate:
		sortStable(result, c.Sort.Order, func(e model.PriceEntry) float64 {
			return float64(ParseTimestamp(e.UpdatedAt).Unix())
		})
	}

	return result
}

// filterStatus keeps entries with the requested status in their current order.
// Unknown modes leave the list untouched.
func filterStatus(entries []model.PriceEntry, mode string) []model.PriceEntry {
	var want model.Status
	switch mode {
	case ModeGood:
		want = model.StatusGood
	case ModeLow:
		want = model.StatusLow
	default:
		return entries
	}

	kept := entries[:0]
	for _, entry := range entries {
		if entry.Status == want {
			kept = append(kept, entry)
		}
	}
	return kept
}

func sortStable(entries []model.PriceEntry, order string, key func(model.PriceEntry) float64) {
	keys := make([]float64, len(entries))
	for i, e := range entries {
		keys[i] = key(e)
	}

	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}

	desc := order == OrderDesc
	sort.SliceStable(idx, func(a, b int) bool {
		if desc {
			return keys[idx[a]] > keys[idx[b]]
		}
		return keys[idx[a]] < keys[idx[b]]
	})

	sorted := make([]model.PriceEntry, len(entries))
	for i, j := range idx {
		sorted[i] = entries[j]
	}
	copy(entries, sorted)
}

// timestampLayouts covers the formats the API has been seen to emit for updatedAt.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006 03:04 PM",
	"Jan 2, 2006 at 3:04 PM",
	"January 2, 2006 3:04 PM",
	"Jan 2, 2006",
	"January 2, 2006",
	"01/02/2006 3:04 PM",
	"01/02/2006 15:04",
	"01/02/2006",
}

// ParseTimestamp parses an updatedAt display string.
// Missing or unparseable values return the zero time, which sorts earliest.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return time.Time{}
}
