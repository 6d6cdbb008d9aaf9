package components

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/Veraticus/veggie-board/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatsPanelModel shows the dashboard statistic cards.
type StatsPanelModel struct {
	theme       themes.Theme
	stats       model.Statistics
	progressBar progress.Model
	width       int
	compact     bool
}

// NewStatsPanelModel creates an empty panel.
func NewStatsPanelModel(theme themes.Theme) StatsPanelModel {
	prog := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	prog.Width = 30

	return StatsPanelModel{
		theme:       theme,
		progressBar: prog,
		width:       80,
	}
}

// SetStatistics replaces the figures shown.
func (m *StatsPanelModel) SetStatistics(stats model.Statistics) {
	m.stats = stats
}

// Statistics returns the figures shown.
func (m StatsPanelModel) Statistics() model.Statistics {
	return m.stats
}

// SetCompact switches to the single-line rendering for narrow terminals.
func (m *StatsPanelModel) SetCompact(compact bool) {
	m.compact = compact
}

// Resize sets the available width.
func (m *StatsPanelModel) Resize(width int) {
	m.width = width
	m.progressBar.Width = min(max(width-24, 10), 40)
}

// Update handles resize messages.
func (m StatsPanelModel) Update(msg tea.Msg) (StatsPanelModel, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.Resize(msg.Width)
	}
	return m, nil
}

// Freshness is the share of entries that are not stale, between 0 and 1.
func (m StatsPanelModel) Freshness() float64 {
	if m.stats.TotalVegetables <= 0 {
		return 0
	}
	fresh := m.stats.TotalVegetables - m.stats.StaleCount
	return min(max(float64(fresh)/float64(m.stats.TotalVegetables), 0), 1)
}

func (m StatsPanelModel) lastUpdate() string {
	if m.stats.LastUpdate == "" {
		return board.NoUpdatesYet
	}
	return m.stats.LastUpdate
}

// View renders the cards.
func (m StatsPanelModel) View() string {
	if m.compact {
		return m.renderCompact()
	}
	return m.renderFull()
}

func (m StatsPanelModel) renderFull() string {
	cardWidth := max((m.width-8)/4, 16)
	card := func(label, value string) string {
		return m.theme.StatCard.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Left,
				m.theme.Price.Render(value),
				m.theme.Muted.Render(label),
			))
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Vegetables", strconv.Itoa(m.stats.TotalVegetables)),
		card("Average Price", FormatPrice(m.stats.AveragePrice)),
		card("Needs Update", strconv.Itoa(m.stats.StaleCount)),
		card("Last Update", m.lastUpdate()),
	)

	if m.stats.TotalVegetables == 0 {
		return cards
	}

	freshness := fmt.Sprintf("Fresh prices %s %d/%d",
		m.progressBar.ViewAs(m.Freshness()),
		m.stats.TotalVegetables-m.stats.StaleCount,
		m.stats.TotalVegetables)
	return lipgloss.JoinVertical(lipgloss.Left, cards, m.theme.Muted.Render(freshness))
}

func (m StatsPanelModel) renderCompact() string {
	return m.theme.Normal.Render(fmt.Sprintf("%d vegetables • avg %s • %d stale • %s",
		m.stats.TotalVegetables,
		FormatPrice(m.stats.AveragePrice),
		m.stats.StaleCount,
		m.lastUpdate()))
}
