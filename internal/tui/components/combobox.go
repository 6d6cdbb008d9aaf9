package components

import (
	"strconv"
	"strings"

	"github.com/Veraticus/veggie-board/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Sentinel rows shown when the filtered list is empty.
const (
	ComboboxNoResults   = "No results found"
	ComboboxAddCustom   = "Press Enter to add custom value"
	defaultPlaceholder  = "Select an option"
	defaultVisibleItems = 6
	defaultInputWidth   = 24
)

// ComboboxConfig lists every option a Combobox accepts.
// Zero values fall back to the documented defaults.
type ComboboxConfig struct {
	// OnSelect is called with every committed value. Defaults to a no-op.
	OnSelect func(string)
	// Placeholder is shown while the input is empty. Defaults to "Select an option".
	Placeholder string
	// InitialValue seeds both the selection and the displayed text.
	InitialValue string
	// Items is the candidate vocabulary, in display order.
	Items []string
	// AllowCustomValue lets Enter commit typed text that matches no candidate.
	AllowCustomValue bool
	// VisibleItems caps the number of rows rendered while open. Defaults to 6.
	VisibleItems int
	// Width is the input width in cells. Defaults to 24.
	Width int
}

// ComboboxChangedMsg is emitted after a value is committed.
type ComboboxChangedMsg struct {
	ID    string
	Value string
}

// Combobox is a text input with a filterable dropdown of candidates.
type Combobox struct {
	theme       themes.Theme
	onSelect    func(string)
	input       textinput.Model
	id          string
	selected    string
	items       []string
	filtered    []string
	highlighted int
	offset      int
	visible     int
	allowCustom bool
	open        bool
	disabled    bool
}

// NewCombobox creates a closed, unfocused combobox.
func NewCombobox(id string, cfg ComboboxConfig, theme themes.Theme) Combobox {
	if cfg.Placeholder == "" {
		cfg.Placeholder = defaultPlaceholder
	}
	if cfg.OnSelect == nil {
		cfg.OnSelect = func(string) {}
	}
	if cfg.VisibleItems <= 0 {
		cfg.VisibleItems = defaultVisibleItems
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultInputWidth
	}

	input := newTextInput(cfg.Placeholder, cfg.Width)
	input.SetValue(cfg.InitialValue)

	items := append([]string(nil), cfg.Items...)

	return Combobox{
		theme:       theme,
		onSelect:    cfg.OnSelect,
		input:       input,
		id:          id,
		selected:    cfg.InitialValue,
		items:       items,
		filtered:    append([]string(nil), items...),
		highlighted: -1,
		visible:     cfg.VisibleItems,
		allowCustom: cfg.AllowCustomValue,
	}
}

// ID returns the identifier carried by ComboboxChangedMsg.
func (c Combobox) ID() string { return c.id }

// Filter narrows the dropdown to candidates containing query, ignoring case.
// Candidate order is preserved and the highlight is cleared.
func (c *Combobox) Filter(query string) {
	needle := strings.ToLower(query)
	filtered := make([]string, 0, len(c.items))
	for _, item := range c.items {
		if needle == "" || strings.Contains(strings.ToLower(item), needle) {
			filtered = append(filtered, item)
		}
	}
	c.filtered = filtered
	c.highlighted = -1
	c.offset = 0
}

// Open shows the dropdown, filtered by the current input text.
func (c *Combobox) Open() {
	c.open = true
	c.Filter(c.input.Value())
}

// Close hides the dropdown and clears the highlight.
func (c *Combobox) Close() {
	c.open = false
	c.highlighted = -1
	c.offset = 0
}

// HighlightNext moves the highlight down one row, stopping at the last row.
func (c *Combobox) HighlightNext() {
	if len(c.filtered) == 0 {
		return
	}
	c.highlighted = min(c.highlighted+1, len(c.filtered)-1)
	c.scrollToHighlighted()
}

// HighlightPrevious moves the highlight up one row, stopping at the first row.
func (c *Combobox) HighlightPrevious() {
	if len(c.filtered) == 0 {
		return
	}
	c.highlighted = max(c.highlighted-1, 0)
	c.scrollToHighlighted()
}

// Commit finalizes value: it becomes the selection and the displayed text,
// the dropdown closes and OnSelect runs once. The returned command emits
// ComboboxChangedMsg.
func (c *Combobox) Commit(value string) tea.Cmd {
	c.selected = value
	c.input.SetValue(value)
	c.input.CursorEnd()
	c.Close()
	c.onSelect(value)

	id := c.id
	return func() tea.Msg {
		return ComboboxChangedMsg{ID: id, Value: value}
	}
}

// CommitAt commits the visible row at index, as a pointer selection would.
func (c *Combobox) CommitAt(index int) tea.Cmd {
	if c.disabled || !c.open || index < 0 || index >= len(c.filtered) {
		return nil
	}
	return c.Commit(c.filtered[index])
}

// Value returns the trimmed displayed text, which may differ from the last
// committed value when the user typed without committing.
func (c Combobox) Value() string {
	return strings.TrimSpace(c.input.Value())
}

// Selected returns the last committed or seeded value.
func (c Combobox) Selected() string {
	return c.selected
}

// SetValue seeds the selection and displayed text without opening or calling OnSelect.
func (c *Combobox) SetValue(value string) {
	c.selected = value
	c.input.SetValue(value)
	c.input.CursorEnd()
}

// Clear blanks the selection and displayed text.
func (c *Combobox) Clear() {
	c.SetValue("")
}

// SetDisabled locks or unlocks the control. A disabled combobox ignores all input.
func (c *Combobox) SetDisabled(disabled bool) {
	c.disabled = disabled
	if disabled {
		c.Close()
		c.input.Blur()
	}
}

// Disabled reports whether the control is locked.
func (c Combobox) Disabled() bool { return c.disabled }

// Focus gives the control keyboard focus and opens the dropdown.
func (c *Combobox) Focus() tea.Cmd {
	if c.disabled {
		return nil
	}
	cmd := c.input.Focus()
	c.Open()
	return cmd
}

// Blur removes focus and closes the dropdown without committing.
func (c *Combobox) Blur() {
	c.input.Blur()
	c.Close()
}

// Focused reports whether the control has keyboard focus.
func (c Combobox) Focused() bool { return c.input.Focused() }

// IsOpen reports whether the dropdown is visible.
func (c Combobox) IsOpen() bool { return c.open }

// Highlighted returns the highlighted row index, or -1.
func (c Combobox) Highlighted() int { return c.highlighted }

// FilteredItems returns the rows currently offered. It is never nil.
func (c Combobox) FilteredItems() []string {
	return append([]string{}, c.filtered...)
}

// Update handles keyboard input while focused.
func (c Combobox) Update(msg tea.Msg) (Combobox, tea.Cmd) {
	if c.disabled || !c.input.Focused() {
		return c, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	switch keyMsg.Type {
	case tea.KeyDown:
		if !c.open {
			c.Open()
		}
		c.HighlightNext()
		return c, nil

	case tea.KeyUp:
		c.HighlightPrevious()
		return c, nil

	case tea.KeyEnter:
		if c.highlighted >= 0 && c.highlighted < len(c.filtered) {
			return c, c.Commit(c.filtered[c.highlighted])
		}
		if text := c.Value(); c.allowCustom && text != "" {
			return c, c.Commit(text)
		}
		return c, nil

	case tea.KeyEsc:
		if c.open {
			c.Close()
		}
		return c, nil
	}

	before := c.input.Value()
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	if c.input.Value() != before {
		c.Filter(c.input.Value())
		c.open = true
	}

	return c, cmd
}

// View renders the input and, when open, the dropdown rows.
func (c Combobox) View() string {
	inputStyle := c.theme.Input
	switch {
	case c.disabled:
		inputStyle = c.theme.InputDisabled
	case c.input.Focused():
		inputStyle = c.theme.InputFocused
	}

	indicator := "▾"
	if c.open {
		indicator = "▴"
	}
	field := inputStyle.Render(c.input.View() + " " + indicator)

	if !c.open {
		return field
	}

	var rows []string
	if len(c.filtered) == 0 {
		sentinel := ComboboxNoResults
		if c.allowCustom {
			sentinel = ComboboxAddCustom
		}
		rows = append(rows, c.theme.Placeholder.Render(sentinel))
	} else {
		end := min(c.offset+c.visible, len(c.filtered))
		for i := c.offset; i < end; i++ {
			if i == c.highlighted {
				rows = append(rows, c.theme.Selected.Render("› "+c.filtered[i]))
				continue
			}
			rows = append(rows, c.theme.Normal.Render("  "+c.filtered[i]))
		}
		if len(c.filtered) > c.visible {
			rows = append(rows, c.theme.Placeholder.Render(
				"  "+strconv.Itoa(len(c.filtered))+" matches"))
		}
	}

	menu := c.theme.Dropdown.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.JoinVertical(lipgloss.Left, field, menu)
}

func (c *Combobox) scrollToHighlighted() {
	if c.highlighted < c.offset {
		c.offset = c.highlighted
	}
	if c.highlighted >= c.offset+c.visible {
		c.offset = c.highlighted - c.visible + 1
	}
}
