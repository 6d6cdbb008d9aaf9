package board

import (
	"sort"

	"github.com/Veraticus/veggie-board/internal/model"
)

// LoadKind identifies which list an in-flight request will replace.
type LoadKind int

// Load kinds.
const (
	LoadBoard LoadKind = iota
	LoadDashboard
)

// Ticket identifies one in-flight load. Completions presenting an outdated
// ticket are discarded so a slow response cannot overwrite newer data.
type Ticket struct {
	Kind       LoadKind
	Generation uint64
}

// State is the application-wide data container. It is only changed through
// its mutation methods and is owned by the UI event loop, so it carries no locking.
type State struct {
	entries      []model.PriceEntry
	own          []model.PriceEntry
	stats        model.Statistics
	generations  [2]uint64
	ownTotal     int
	hasOwnTotal  bool
	boardLoaded  bool
	dashboardSet bool
}

// NewState returns an empty state.
func NewState() *State {
	return &State{}
}

// Begin starts a load of the given kind and returns its ticket.
// Starting a new load invalidates every earlier ticket of the same kind.
func (s *State) Begin(kind LoadKind) Ticket {
	s.generations[kind]++
	return Ticket{Kind: kind, Generation: s.generations[kind]}
}

// Accept reports whether a completion carrying t may still be applied.
func (s *State) Accept(t Ticket) bool {
	return s.generations[t.Kind] == t.Generation
}

// Invalidate drops every outstanding ticket of the given kind.
func (s *State) Invalidate(kind LoadKind) {
	s.generations[kind]++
}

// ApplyBoard replaces the public entry list. Stale tickets are ignored and reported as false.
func (s *State) ApplyBoard(t Ticket, entries []model.PriceEntry) bool {
	if t.Kind != LoadBoard || !s.Accept(t) {
		return false
	}
	s.entries = append([]model.PriceEntry(nil), entries...)
	s.boardLoaded = true
	return true
}

// ApplyDashboard replaces the signed-in commissioner's entries and statistics.
func (s *State) ApplyDashboard(t Ticket, entries []model.PriceEntry, stats model.Statistics) bool {
	if t.Kind != LoadDashboard || !s.Accept(t) {
		return false
	}
	s.own = append([]model.PriceEntry(nil), entries...)
	s.stats = stats
	s.ownTotal = stats.TotalVegetables
	s.hasOwnTotal = true
	s.dashboardSet = true
	return true
}

// ApplyDeleted removes an entry from both lists after a successful delete.
func (s *State) ApplyDeleted(id int) {
	s.entries = removeEntry(s.entries, id)

	before := len(s.own)
	s.own = removeEntry(s.own, id)
	if len(s.own) != before && s.ownTotal > 0 {
		s.ownTotal--
	}
}

// Reset clears commissioner-specific data, used on logout.
func (s *State) Reset() {
	s.own = nil
	s.stats = model.Statistics{}
	s.ownTotal = 0
	s.hasOwnTotal = false
	s.dashboardSet = false
	s.Invalidate(LoadDashboard)
}

// Entries returns the full public list.
func (s *State) Entries() []model.PriceEntry {
	return s.entries
}

// OwnEntries returns the signed-in commissioner's entries.
func (s *State) OwnEntries() []model.PriceEntry {
	return s.own
}

// Statistics returns the signed-in commissioner's statistics.
func (s *State) Statistics() model.Statistics {
	return s.stats
}

// BoardLoaded reports whether the public list has been fetched at least once.
func (s *State) BoardLoaded() bool {
	return s.boardLoaded
}

// DashboardLoaded reports whether the commissioner's entries have been fetched.
func (s *State) DashboardLoaded() bool {
	return s.dashboardSet
}

// TotalCount is the denominator shown next to the result count: the
// commissioner's own total when signed in, otherwise the full board size.
func (s *State) TotalCount() int {
	if s.hasOwnTotal {
		return s.ownTotal
	}
	return len(s.entries)
}

// View runs the filter/sort pipeline over the public list.
func (s *State) View(c Criteria) []model.PriceEntry {
	return Apply(s.entries, c)
}

// CommissionerOptions lists each commissioner on the board once, sorted.
func (s *State) CommissionerOptions() []string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range s.entries {
		if e.CommissionerName == "" || seen[e.CommissionerName] {
			continue
		}
		seen[e.CommissionerName] = true
		names = append(names, e.CommissionerName)
	}
	sort.Strings(names)
	return names
}

// FindOwn looks up one of the commissioner's entries by id.
func (s *State) FindOwn(id int) (model.PriceEntry, bool) {
	for _, e := range s.own {
		if e.ID == id {
			return e, true
		}
	}
	return model.PriceEntry{}, false
}

func removeEntry(entries []model.PriceEntry, id int) []model.PriceEntry {
	out := make([]model.PriceEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}
