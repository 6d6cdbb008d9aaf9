package components

import (
	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/Veraticus/veggie-board/internal/model"
)

// CloseModalMsg asks the app to close the active modal without acting.
type CloseModalMsg struct{}

// EntrySubmittedMsg carries a validated add/edit form.
// Origin is nil when adding.
type EntrySubmittedMsg struct {
	Origin *board.EditOrigin
	Draft  model.EntryDraft
}

// BulkSubmittedMsg carries the changed rows of the bulk editor.
type BulkSubmittedMsg struct {
	Updates []model.PriceUpdate
}

// DeleteConfirmedMsg confirms deletion of one entry.
type DeleteConfirmedMsg struct {
	ID int
}

// LoginSubmittedMsg carries validated credentials.
type LoginSubmittedMsg struct {
	Email    string
	Password string
}

// SignupSubmittedMsg carries a validated registration.
type SignupSubmittedMsg struct {
	Name     string
	Email    string
	Password string
}
