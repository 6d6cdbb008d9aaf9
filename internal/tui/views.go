package tui

import (
	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.renderNav()
	footer := m.renderStatusBar()
	toasts := m.notifications.View()

	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-lipgloss.Height(toasts), 1)

	var body string
	if m.modal != ModalNone {
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.renderModal())
	} else {
		body = m.renderPage()
	}

	parts := []string{header}
	if toasts != "" {
		parts = append(parts, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toasts))
	}
	parts = append(parts, body, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderModal() string {
	switch m.modal {
	case ModalEntry:
		return m.entryForm.View()
	case ModalBulk:
		return m.bulk.View()
	case ModalDelete:
		return m.confirm.View()
	}
	return ""
}

func (m Model) renderPage() string {
	switch m.page {
	case PageBoard:
		return m.renderBoard()
	case PageDashboard:
		return m.renderDashboard()
	case PageLogin:
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.loginForm.View())
	case PageSignup:
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.signupForm.View())
	default:
		return m.renderLanding()
	}
}

// renderNav renders the top navigation bar.
func (m Model) renderNav() string {
	tab := func(label string, page Page) string {
		if m.page == page {
			return m.theme.NavActive.Render(label)
		}
		return m.theme.NavInactive.Render(label)
	}

	tabs := []string{
		m.theme.Title.UnsetMarginBottom().Render("Veggie Board") + "  ",
		tab("Home", PageLanding),
		tab("1 Price Board", PageBoard),
	}

	right := ""
	if user, ok := m.session.Current(); ok {
		tabs = append(tabs, tab("2 Dashboard", PageDashboard), m.theme.NavInactive.Render("o Logout"))
		right = m.theme.Muted.Render("Signed in as " + user.Name)
	} else {
		tabs = append(tabs, tab("i Login", PageLogin), tab("Sign Up", PageSignup))
	}

	left := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().Width(gap).Render(""), right)
}

func (m Model) renderLanding() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.theme.Title.Render("Fresh vegetable prices from your community"),
		m.theme.Subtitle.Render("Commissioners report what vegetables cost today, so everyone shops informed."),
		"",
		m.theme.Bold.Render("enter view the price board • i log in • q quit"),
	)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content)
}

func (m Model) renderBoard() string {
	lines := []string{
		m.theme.Title.Render("Vegetable Price Board"),
		m.filters.View(),
		m.theme.Muted.Render(board.ResultsLine(m.boardTable.Len(), m.state.TotalCount())),
	}

	if !m.state.BoardLoaded() && m.loading > 0 {
		lines = append(lines, m.spinner.View()+" Loading prices...")
	} else {
		lines = append(lines, m.boardTable.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderDashboard() string {
	user, _ := m.session.Current()

	lines := []string{
		m.theme.Title.Render("Commissioner Dashboard"),
		m.theme.Subtitle.Render("Welcome, " + user.Name),
		m.stats.View(),
		m.theme.Bold.Render(board.DashboardHeader(m.state.Statistics(), m.state.OwnEntries())),
	}

	if !m.state.DashboardLoaded() && m.loading > 0 {
		lines = append(lines, m.spinner.View()+" Loading your entries...")
	} else {
		lines = append(lines, m.dashTable.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	status := ""
	if m.loading > 0 {
		status = m.spinner.View() + " Loading... "
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, status, m.help.View(m.keymap))
}
