package components

import (
	"github.com/Veraticus/veggie-board/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultDeleteMessage is the confirmation prompt for deleting an entry.
const DefaultDeleteMessage = "Are you sure you want to delete this item?"

// ConfirmModel asks the user to confirm deleting one entry.
type ConfirmModel struct {
	theme   themes.Theme
	message string
	id      int
	yes     bool
}

// NewConfirm creates a dialog for entry id. Cancel is preselected.
func NewConfirm(id int, message string, theme themes.Theme) ConfirmModel {
	if message == "" {
		message = DefaultDeleteMessage
	}
	return ConfirmModel{theme: theme, message: message, id: id}
}

// Update handles the dialog keys.
func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return m, m.confirm()
	case "n", "N", "esc", "q":
		return m, func() tea.Msg { return CloseModalMsg{} }
	case "left", "right", "tab", "shift+tab", "h", "l":
		m.yes = !m.yes
	case "enter", " ":
		if m.yes {
			return m, m.confirm()
		}
		return m, func() tea.Msg { return CloseModalMsg{} }
	}
	return m, nil
}

func (m ConfirmModel) confirm() tea.Cmd {
	id := m.id
	return func() tea.Msg { return DeleteConfirmedMsg{ID: id} }
}

// View renders the dialog.
func (m ConfirmModel) View() string {
	cancel, del := m.theme.NavInactive.Render("[ Cancel ]"), m.theme.NavInactive.Render("[ Delete ]")
	if m.yes {
		del = m.theme.StatusError.Render("[ Delete ]")
	} else {
		cancel = m.theme.Selected.Render("[ Cancel ]")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Confirm Delete"),
		m.theme.Normal.Render(m.message),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cancel, "  ", del),
		m.theme.Muted.Render("y delete • n cancel"),
	)
	return m.theme.Modal.Render(body)
}
