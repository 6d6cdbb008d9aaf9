package board

import (
	"fmt"

	"github.com/Veraticus/veggie-board/internal/model"
)

// Labels for a dashboard whose last update cannot be shown.
const (
	NoUpdatesYet  = "No updates yet"
	UnknownUpdate = "Unknown"
)

// ResultsLine reports how many entries the filters kept out of total.
func ResultsLine(shown, total int) string {
	return fmt.Sprintf("Showing %d of %d entries", shown, total)
}

// DashboardHeader summarizes a commissioner's entries. Entries arrive
// newest first, so the first one carries the latest update.
func DashboardHeader(stats model.Statistics, entries []model.PriceEntry) string {
	noun := "entries"
	if stats.TotalVegetables == 1 {
		noun = "entry"
	}

	last := NoUpdatesYet
	if len(entries) > 0 {
		last = entries[0].UpdatedAt
		if last == "" {
			last = UnknownUpdate
		}
	}
	return fmt.Sprintf("%d %s • Last updated: %s", stats.TotalVegetables, noun, last)
}
