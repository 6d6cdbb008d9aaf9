package board

import (
	"math"

	"github.com/Veraticus/veggie-board/internal/model"
)

// PendingEdit tracks one row of the bulk update editor.
type PendingEdit struct {
	OriginalStatus model.Status
	ProposedStatus model.Status
	OriginalPrice  float64
	ProposedPrice  float64
	ID             int
}

// Changed reports whether the proposal differs from the original values.
// Prices are compared at cent precision.
func (p PendingEdit) Changed() bool {
	return cents(p.OriginalPrice) != cents(p.ProposedPrice) || p.OriginalStatus != p.ProposedStatus
}

// PendingEdits keeps proposed price/status changes keyed by entry id,
// in the order the entries were loaded.
type PendingEdits struct {
	edits map[int]*PendingEdit
	order []int
}

// NewPendingEdits seeds one unchanged edit per entry.
func NewPendingEdits(entries []model.PriceEntry) *PendingEdits {
	p := &PendingEdits{
		edits: make(map[int]*PendingEdit, len(entries)),
		order: make([]int, 0, len(entries)),
	}
	for _, e := range entries {
		if _, dup := p.edits[e.ID]; dup {
			continue
		}
		p.edits[e.ID] = &PendingEdit{
			ID:             e.ID,
			OriginalPrice:  e.Price,
			ProposedPrice:  e.Price,
			OriginalStatus: e.Status,
			ProposedStatus: e.Status,
		}
		p.order = append(p.order, e.ID)
	}
	return p
}

// Len returns the number of tracked rows.
func (p *PendingEdits) Len() int {
	return len(p.order)
}

// IDs returns the tracked entry ids in load order.
func (p *PendingEdits) IDs() []int {
	return append([]int(nil), p.order...)
}

// Get returns the edit for id.
func (p *PendingEdits) Get(id int) (PendingEdit, bool) {
	e, ok := p.edits[id]
	if !ok {
		return PendingEdit{}, false
	}
	return *e, true
}

// SetPrice records a proposed price. Unknown ids are ignored.
func (p *PendingEdits) SetPrice(id int, price float64) {
	if e, ok := p.edits[id]; ok {
		e.ProposedPrice = price
	}
}

// SetStatus records a proposed status. Unknown ids are ignored.
func (p *PendingEdits) SetStatus(id int, status model.Status) {
	if e, ok := p.edits[id]; ok {
		e.ProposedStatus = status
	}
}

// Diff returns the update batch: one row per changed entry, in load order.
func (p *PendingEdits) Diff() []model.PriceUpdate {
	var updates []model.PriceUpdate
	for _, id := range p.order {
		e := p.edits[id]
		if !e.Changed() {
			continue
		}
		updates = append(updates, model.PriceUpdate{
			ID:     e.ID,
			Price:  e.ProposedPrice,
			Status: e.ProposedStatus,
		})
	}
	return updates
}

func cents(v float64) int64 {
	return int64(math.Round(v * 100))
}
