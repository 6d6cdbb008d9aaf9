package tui

import (
	"github.com/Veraticus/veggie-board/internal/api"
	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/Veraticus/veggie-board/internal/model"
)

// Data loading messages. The ticket decides whether the result is still wanted.
type boardLoadedMsg struct {
	err     error
	entries []model.PriceEntry
	ticket  board.Ticket
}

type dashboardLoadedMsg struct {
	err    error
	data   api.CommissionerEntries
	ticket board.Ticket
}

// Authentication results.
type authKind int

const (
	authLogin authKind = iota
	authSignup
)

type authResultMsg struct {
	err  error
	user model.Commissioner
	kind authKind
}

type logoutDoneMsg struct {
	err error
}

// Mutation results. modalID ties a result to the modal that started it;
// results for a modal that has since closed are dropped.
type entrySavedMsg struct {
	err       error
	duplicate *model.PriceEntry
	message   string
	draft     model.EntryDraft
	modalID   uint64
}

type bulkSavedMsg struct {
	err     error
	result  api.BulkResult
	modalID uint64
}

// Deletes are not tied to a modal: the confirmation closes as soon as the
// request starts.
type entryDeletedMsg struct {
	err     error
	message string
	id      int
}

// redirectMsg switches page after a delay.
type redirectMsg struct {
	page Page
}
