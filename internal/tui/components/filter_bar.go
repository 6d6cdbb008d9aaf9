package components

import (
	"strings"

	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/Veraticus/veggie-board/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// VegetableFilterID identifies the filter bar's vegetable combobox.
const VegetableFilterID = "vegetable-filter"

// AllCommissioners labels the unset commissioner filter.
const AllCommissioners = "All Commissioners"

// FilterField is one control of the filter bar.
type FilterField int

// Filter bar controls in tab order.
const (
	FilterSearch FilterField = iota
	FilterVegetable
	FilterCommissioner
	FilterSort
	filterFieldCount
)

// FilterBarModel holds the search box and filter/sort selectors of the price board.
type FilterBarModel struct {
	theme         themes.Theme
	commissioners []string
	search        textinput.Model
	vegetable     Combobox
	commissioner  string
	sortIndex     int
	focus         FilterField
	active        bool
}

// NewFilterBar creates a filter bar offering vegetables as filter values.
func NewFilterBar(vegetables []string, theme themes.Theme) FilterBarModel {
	search := newTextInput("Search vegetables or commissioners...", 32)
	search.Prompt = "/ "
	search.CharLimit = 64

	return FilterBarModel{
		theme:  theme,
		search: search,
		vegetable: NewCombobox(VegetableFilterID, ComboboxConfig{
			Items:       vegetables,
			Placeholder: "All Vegetables",
			Width:       22,
		}, theme),
	}
}

// Criteria snapshots the controls for the pipeline.
func (m FilterBarModel) Criteria() board.Criteria {
	return board.Criteria{
		Search:       m.search.Value(),
		Vegetable:    m.vegetableFilter(),
		Commissioner: m.commissioner,
		Sort:         board.SortOptions[m.sortIndex].Directive,
	}
}

// vegetableFilter only applies a committed vegetable still shown in the box.
func (m FilterBarModel) vegetableFilter() string {
	selected := m.vegetable.Selected()
	if selected == "" || !strings.EqualFold(m.vegetable.Value(), selected) {
		return ""
	}
	return selected
}

// SetCommissioners updates the commissioner choices. A selection that
// disappeared from the board is reset.
func (m *FilterBarModel) SetCommissioners(names []string) {
	m.commissioners = append([]string(nil), names...)
	if m.commissioner == "" {
		return
	}
	for _, n := range names {
		if n == m.commissioner {
			return
		}
	}
	m.commissioner = ""
}

// Clear resets every control.
func (m *FilterBarModel) Clear() {
	m.search.SetValue("")
	m.vegetable.Clear()
	m.vegetable.Close()
	m.commissioner = ""
	m.sortIndex = 0
}

// Focus activates the bar on field.
func (m *FilterBarModel) Focus(field FilterField) tea.Cmd {
	m.active = true
	return m.setFocus(field)
}

// Blur deactivates the bar.
func (m *FilterBarModel) Blur() {
	m.active = false
	m.search.Blur()
	m.vegetable.Blur()
}

// Active reports whether the bar holds keyboard focus.
func (m FilterBarModel) Active() bool { return m.active }

// FocusedField returns the control with focus.
func (m FilterBarModel) FocusedField() FilterField { return m.focus }

// Capturing reports whether the focused control consumes plain keys,
// so page-level shortcuts must not fire.
func (m FilterBarModel) Capturing() bool {
	return m.active && (m.focus == FilterSearch || m.focus == FilterVegetable)
}

// ConsumesEscape reports whether esc should go to the bar instead of the page.
func (m FilterBarModel) ConsumesEscape() bool {
	return m.active && m.focus == FilterVegetable && m.vegetable.IsOpen()
}

// Update routes keys to the focused control.
func (m FilterBarModel) Update(msg tea.Msg) (FilterBarModel, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.forward(msg)
	}

	switch keyMsg.Type {
	case tea.KeyTab:
		return m, m.setFocus((m.focus + 1) % filterFieldCount)
	case tea.KeyShiftTab:
		return m, m.setFocus((m.focus + filterFieldCount - 1) % filterFieldCount)
	}

	switch m.focus {
	case FilterCommissioner:
		switch keyMsg.String() {
		case "right", "l", " ", "enter":
			m.cycleCommissioner(1)
		case "left", "h":
			m.cycleCommissioner(-1)
		}
		return m, nil

	case FilterSort:
		switch keyMsg.String() {
		case "right", "l", " ", "enter":
			m.sortIndex = (m.sortIndex + 1) % len(board.SortOptions)
		case "left", "h":
			m.sortIndex = (m.sortIndex + len(board.SortOptions) - 1) % len(board.SortOptions)
		}
		return m, nil
	}

	return m.forward(msg)
}

func (m FilterBarModel) forward(msg tea.Msg) (FilterBarModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FilterSearch:
		m.search, cmd = m.search.Update(msg)
	case FilterVegetable:
		m.vegetable, cmd = m.vegetable.Update(msg)
	}
	return m, cmd
}

func (m *FilterBarModel) setFocus(field FilterField) tea.Cmd {
	m.focus = field
	m.search.Blur()
	m.vegetable.Blur()

	switch field {
	case FilterSearch:
		return m.search.Focus()
	case FilterVegetable:
		return m.vegetable.Focus()
	}
	return nil
}

func (m *FilterBarModel) cycleCommissioner(step int) {
	options := append([]string{""}, m.commissioners...)
	current := 0
	for i, o := range options {
		if o == m.commissioner {
			current = i
			break
		}
	}
	next := (current + step + len(options)) % len(options)
	m.commissioner = options[next]
}

// View renders the bar on one line plus the vegetable dropdown when open.
func (m FilterBarModel) View() string {
	commissioner := m.commissioner
	if commissioner == "" {
		commissioner = AllCommissioners
	}

	selector := func(field FilterField, text string) string {
		style := m.theme.Input
		if m.active && m.focus == field {
			style = m.theme.InputFocused
		}
		return style.Render("‹ " + text + " ›")
	}

	searchStyle := m.theme.Input
	if m.active && m.focus == FilterSearch {
		searchStyle = m.theme.InputFocused
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		searchStyle.Render(m.search.View()),
		" ",
		m.vegetable.View(),
		" ",
		selector(FilterCommissioner, commissioner),
		" ",
		selector(FilterSort, board.SortOptions[m.sortIndex].Label),
	)
}
