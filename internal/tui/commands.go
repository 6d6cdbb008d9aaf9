package tui

import (
	"context"
	"time"

	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/Veraticus/veggie-board/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// requestContext bounds one API call by the configured timeout.
func (m Model) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, m.config.RequestTimeout)
}

// loadBoard fetches the public listing under ticket.
func (m Model) loadBoard(ticket board.Ticket) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		entries, err := client.ReadAll(ctx)
		return boardLoadedMsg{ticket: ticket, entries: entries, err: err}
	}
}

// loadDashboard fetches the signed-in commissioner's entries and statistics.
func (m Model) loadDashboard(ticket board.Ticket, commissionerID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		data, err := client.ReadByCommissioner(ctx, commissionerID)
		return dashboardLoadedMsg{ticket: ticket, data: data, err: err}
	}
}

// refresh reloads the board and, when signed in, the dashboard. The
// dashboard load also supplies the commissioner total shown on the board.
func (m *Model) refresh() tea.Cmd {
	cmds := []tea.Cmd{m.loadBoard(m.state.Begin(board.LoadBoard))}
	m.loading++

	if user, ok := m.session.Current(); ok {
		cmds = append(cmds, m.loadDashboard(m.state.Begin(board.LoadDashboard), user.ID))
		m.loading++
	}

	cmds = append(cmds, m.spinner.Tick)
	return tea.Batch(cmds...)
}

// reloadDashboard refetches only the commissioner's data after a mutation.
func (m *Model) reloadDashboard() tea.Cmd {
	user, ok := m.session.Current()
	if !ok {
		return nil
	}
	m.loading += 2
	return tea.Batch(
		m.loadDashboard(m.state.Begin(board.LoadDashboard), user.ID),
		m.loadBoard(m.state.Begin(board.LoadBoard)),
		m.spinner.Tick,
	)
}

func (m Model) login(email, password string) tea.Cmd {
	client, sess := m.client, m.session
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		user, err := sess.Login(ctx, client, email, password)
		return authResultMsg{kind: authLogin, user: user, err: err}
	}
}

func (m Model) signup(name, email, password string) tea.Cmd {
	client, sess := m.client, m.session
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		user, err := sess.Signup(ctx, client, name, email, password)
		return authResultMsg{kind: authSignup, user: user, err: err}
	}
}

func (m Model) logout() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		return logoutDoneMsg{err: sess.Logout(ctx)}
	}
}

// saveEntry re-reads the commissioner's entries for the duplicate check and
// then creates or updates the draft. A failed re-read is logged and the save
// goes ahead.
func (m Model) saveEntry(modalID uint64, commissionerID int, draft model.EntryDraft, origin *board.EditOrigin) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		snapshot, err := client.ReadByCommissioner(ctx, commissionerID)
		if err != nil {
			common.LogError(err, "Duplicate check skipped", common.Fields{
				"commissioner_id": commissionerID,
				"vegetable":       draft.Vegetable,
			})
		} else if dup, found := board.FindDuplicate(snapshot.Entries, draft, origin); found {
			return entrySavedMsg{modalID: modalID, draft: draft, duplicate: &dup}
		}

		message, err := client.Save(ctx, commissionerID, draft)
		return entrySavedMsg{modalID: modalID, draft: draft, message: message, err: err}
	}
}

func (m Model) bulkUpdate(modalID uint64, updates []model.PriceUpdate) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		result, err := client.BulkUpdate(ctx, updates)
		return bulkSavedMsg{modalID: modalID, result: result, err: err}
	}
}

func (m Model) deleteEntry(commissionerID, id int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		message, err := client.Delete(ctx, commissionerID, id)
		return entryDeletedMsg{id: id, message: message, err: err}
	}
}

// redirectAfter switches to page once delay has passed.
func redirectAfter(delay time.Duration, page Page) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return redirectMsg{page: page}
	})
}
