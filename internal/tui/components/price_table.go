package components

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/Veraticus/veggie-board/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// EmptyTableMessage is shown in place of rows when there is nothing to list.
const EmptyTableMessage = "No price entries found."

// TableLayout selects the column set.
type TableLayout int

// Table layouts.
const (
	// LayoutBoard shows who submitted each price.
	LayoutBoard TableLayout = iota
	// LayoutDashboard shows the commissioner's own quantities.
	LayoutDashboard
)

// FormatPrice renders a price in pesos with two decimals.
func FormatPrice(price float64) string {
	return fmt.Sprintf("₱%.2f", price)
}

// PriceTableModel lists price entries.
type PriceTableModel struct {
	theme   themes.Theme
	entries []model.PriceEntry
	table   table.Model
	layout  TableLayout
	width   int
}

// NewPriceTable creates an empty table.
func NewPriceTable(layout TableLayout, theme themes.Theme) PriceTableModel {
	t := table.New(
		table.WithColumns(columnsFor(layout, 100)),
		table.WithFocused(false),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Selected
	t.SetStyles(s)

	return PriceTableModel{
		theme:  theme,
		table:  t,
		layout: layout,
		width:  100,
	}
}

func columnsFor(layout TableLayout, width int) []table.Column {
	// Fixed columns take what they need, vegetable and notes share the rest.
	fixed := 12 + 8 + 20 + 14
	flex := max(width-fixed-14, 20)
	vegWidth := flex / 2
	notesWidth := flex - vegWidth

	fourth := table.Column{Title: "Commissioner", Width: 14}
	if layout == LayoutDashboard {
		fourth = table.Column{Title: "Quantity", Width: 8}
	}

	return []table.Column{
		{Title: "Vegetable", Width: vegWidth},
		{Title: "Price", Width: 12},
		{Title: "Unit", Width: 8},
		fourth,
		{Title: "Updated", Width: 20},
		{Title: "Status", Width: 14},
		{Title: "Notes", Width: notesWidth},
	}
}

// SetEntries replaces the rows, keeping the cursor in range.
func (m *PriceTableModel) SetEntries(entries []model.PriceEntry) {
	m.entries = append([]model.PriceEntry(nil), entries...)

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		fourth := e.CommissionerName
		if m.layout == LayoutDashboard {
			fourth = strconv.Itoa(e.Quantity)
		}
		notes := e.Notes
		if notes == "" {
			notes = "-"
		}
		rows = append(rows, table.Row{
			e.VegetableName,
			FormatPrice(e.Price),
			e.Unit,
			fourth,
			e.UpdatedAt,
			string(e.Status),
			notes,
		})
	}
	m.table.SetRows(rows)

	if cursor := m.table.Cursor(); cursor >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Entries returns the rows currently shown.
func (m PriceTableModel) Entries() []model.PriceEntry {
	return m.entries
}

// Len returns the number of rows.
func (m PriceTableModel) Len() int {
	return len(m.entries)
}

// Selected returns the entry under the cursor.
func (m PriceTableModel) Selected() (model.PriceEntry, bool) {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.entries) {
		return model.PriceEntry{}, false
	}
	return m.entries[cursor], true
}

// SetSize fits the table into width x height cells.
func (m *PriceTableModel) SetSize(width, height int) {
	m.width = width
	m.table.SetColumns(columnsFor(m.layout, width))
	m.table.SetWidth(width)
	m.table.SetHeight(max(height, 3))
}

// Focus lets the table take arrow keys.
func (m *PriceTableModel) Focus() { m.table.Focus() }

// Blur stops the table from taking keys.
func (m *PriceTableModel) Blur() { m.table.Blur() }

// Focused reports whether the table takes keys.
func (m PriceTableModel) Focused() bool { return m.table.Focused() }

// Update moves the cursor.
func (m PriceTableModel) Update(msg tea.Msg) (PriceTableModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m PriceTableModel) View() string {
	if len(m.entries) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.table.View(),
			m.theme.Placeholder.Render(EmptyTableMessage))
	}
	return m.table.View()
}
