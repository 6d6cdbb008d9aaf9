package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/Veraticus/veggie-board/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// MsgNoChanges is shown when the bulk editor has nothing to send.
const MsgNoChanges = "No changes detected."

type bulkRow struct {
	entry model.PriceEntry
	price textinput.Model
	err   string
}

// BulkUpdateModel edits the price and status of many entries at once.
type BulkUpdateModel struct {
	theme   themes.Theme
	pending *board.PendingEdits
	rows    []bulkRow
	notice  string
	cursor  int
	onState bool
	saving  bool
}

// NewBulkUpdate creates an editor over the commissioner's entries.
func NewBulkUpdate(entries []model.PriceEntry, theme themes.Theme) BulkUpdateModel {
	rows := make([]bulkRow, 0, len(entries))
	for _, e := range entries {
		in := newTextInput("0.00", 10)
		in.CharLimit = 12
		in.SetValue(strconv.FormatFloat(e.Price, 'f', 2, 64))
		rows = append(rows, bulkRow{entry: e, price: in})
	}

	return BulkUpdateModel{
		theme:   theme,
		pending: board.NewPendingEdits(entries),
		rows:    rows,
	}
}

// Init focuses the first row.
func (m *BulkUpdateModel) Init() tea.Cmd {
	return m.focusRow()
}

// Pending exposes the tracked edits.
func (m BulkUpdateModel) Pending() *board.PendingEdits {
	return m.pending
}

// SetSaving toggles the in-flight state that blocks double submission.
func (m *BulkUpdateModel) SetSaving(saving bool) {
	m.saving = saving
}

// Notice returns the message shown above the buttons.
func (m BulkUpdateModel) Notice() string { return m.notice }

// Update handles row navigation and editing.
func (m BulkUpdateModel) Update(msg tea.Msg) (BulkUpdateModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.rows) == 0 {
		if ok && keyMsg.String() == "esc" {
			return m, func() tea.Msg { return CloseModalMsg{} }
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return CloseModalMsg{} }
	case "ctrl+s", "enter":
		return m.submit()
	case "up":
		m.cursor = max(m.cursor-1, 0)
		return m, m.focusRow()
	case "down":
		m.cursor = min(m.cursor+1, len(m.rows)-1)
		return m, m.focusRow()
	case "tab", "shift+tab":
		m.onState = !m.onState
		return m, m.focusRow()
	}

	row := &m.rows[m.cursor]
	if m.onState {
		if step := choiceStep(keyMsg); step != 0 {
			edit, _ := m.pending.Get(row.entry.ID)
			m.pending.SetStatus(row.entry.ID, cycle(model.Statuses, edit.ProposedStatus, step))
			m.notice = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	row.price, cmd = row.price.Update(keyMsg)
	m.applyPrice(row)
	m.notice = ""
	return m, cmd
}

func (m *BulkUpdateModel) applyPrice(row *bulkRow) {
	raw := strings.TrimSpace(row.price.Value())
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price < 0 {
		row.err = board.MsgPriceInvalid
		return
	}
	row.err = ""
	m.pending.SetPrice(row.entry.ID, price)
}

func (m BulkUpdateModel) submit() (BulkUpdateModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	for _, row := range m.rows {
		if row.err != "" {
			m.notice = fmt.Sprintf("%s: %s", row.entry.VegetableName, row.err)
			return m, nil
		}
	}

	updates := m.pending.Diff()
	if len(updates) == 0 {
		m.notice = MsgNoChanges
		return m, nil
	}

	m.saving = true
	return m, func() tea.Msg { return BulkSubmittedMsg{Updates: updates} }
}

func (m *BulkUpdateModel) focusRow() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.rows {
		if i == m.cursor && !m.onState {
			cmd = m.rows[i].price.Focus()
			continue
		}
		m.rows[i].price.Blur()
	}
	return cmd
}

// View renders the editor grid.
func (m BulkUpdateModel) View() string {
	lines := []string{m.theme.Title.Render("Bulk Update Prices")}

	if len(m.rows) == 0 {
		lines = append(lines, m.theme.Placeholder.Render("You have no entries to update."))
	}

	if len(m.rows) > 0 {
		header := lipgloss.JoinHorizontal(lipgloss.Top,
			"  ", cell("Vegetable", 22), cell("Current", 12), cell("New Price (₱)", 16), cell("Unit", 8), "Status")
		lines = append(lines, m.theme.Label.Render(header))
	}

	for i, row := range m.rows {
		edit, _ := m.pending.Get(row.entry.ID)

		status := string(edit.ProposedStatus)
		if i == m.cursor && m.onState {
			status = m.theme.Selected.Render("‹ " + status + " ›")
		}

		marker := "  "
		if i == m.cursor {
			marker = "› "
		}
		changed := " "
		if edit.Changed() {
			changed = "*"
		}

		line := lipgloss.JoinHorizontal(lipgloss.Top,
			marker,
			cell(row.entry.VegetableName, 22),
			cell(FormatPrice(row.entry.Price), 12),
			cell(row.price.View(), 16),
			cell(row.entry.Unit, 8),
			status,
			" "+changed,
		)
		lines = append(lines, line)
		if row.err != "" {
			lines = append(lines, "  "+m.theme.FieldError.Render("⚠ "+row.err))
		}
	}

	if m.notice != "" {
		lines = append(lines, "", m.theme.StatusWarning.Render(m.notice))
	}

	button := "[ Update All ]"
	if m.saving {
		button = "Saving..."
	}
	lines = append(lines, "",
		m.theme.Bold.Render(button)+m.theme.Muted.Render("   ↑/↓ row • tab price/status • ←/→ status • enter save • esc cancel"))

	return m.theme.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// cell pads or cuts s to exactly width cells, keeping one space of gutter.
func cell(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(ansi.Truncate(s, width-1, "…"))
}
