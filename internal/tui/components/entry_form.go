package components

import (
	"strconv"

	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/Veraticus/veggie-board/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// EntryVegetableID identifies the entry form's vegetable combobox.
const EntryVegetableID = "entry-vegetable"

// Entry form fields in tab order.
const (
	entryFieldVegetable = iota
	entryFieldPrice
	entryFieldUnit
	entryFieldQuantity
	entryFieldStatus
	entryFieldNotes
	entryFieldCount
)

// EntryFormModel is the add/edit price entry modal.
type EntryFormModel struct {
	theme     themes.Theme
	errors    fieldErrors
	origin    *board.EditOrigin
	unit      string
	status    model.Status
	vegetable Combobox
	price     textinput.Model
	quantity  textinput.Model
	notes     textinput.Model
	id        int
	focus     int
	saving    bool
}

// NewEntryForm creates an empty add form with the default unit and status.
func NewEntryForm(vegetables []string, theme themes.Theme) EntryFormModel {
	m := EntryFormModel{
		theme:  theme,
		errors: fieldErrors{},
		unit:   model.DefaultUnit,
		status: model.StatusGood,
		vegetable: NewCombobox(EntryVegetableID, ComboboxConfig{
			Items:            vegetables,
			Placeholder:      "Select a vegetable",
			AllowCustomValue: true,
			Width:            30,
		}, theme),
		price:    newTextInput("0.00", 12),
		quantity: newTextInput("Optional", 12),
		notes:    newTextInput("Optional notes", 40),
	}
	m.price.CharLimit = 12
	m.quantity.CharLimit = 9
	m.notes.CharLimit = 255
	return m
}

// NewEditEntryForm creates a form seeded from entry with the vegetable locked.
func NewEditEntryForm(vegetables []string, entry model.PriceEntry, theme themes.Theme) EntryFormModel {
	m := NewEntryForm(vegetables, theme)

	status := entry.Status
	if status == "" {
		status = model.StatusGood
	}

	m.id = entry.ID
	m.origin = &board.EditOrigin{
		ID:        entry.ID,
		Vegetable: entry.VegetableName,
		Status:    status,
	}
	m.vegetable.SetValue(entry.VegetableName)
	m.vegetable.SetDisabled(true)
	m.price.SetValue(strconv.FormatFloat(entry.Price, 'f', -1, 64))
	if entry.Unit != "" {
		m.unit = entry.Unit
	}
	if entry.Quantity != 0 {
		m.quantity.SetValue(strconv.Itoa(entry.Quantity))
	}
	m.status = status
	m.notes.SetValue(entry.Notes)
	m.focus = entryFieldPrice
	return m
}

// Init focuses the first editable field.
func (m *EntryFormModel) Init() tea.Cmd {
	return m.setFocus(m.focus)
}

// IsEdit reports whether the form updates an existing entry.
func (m EntryFormModel) IsEdit() bool { return m.origin != nil }

// Title is the modal heading.
func (m EntryFormModel) Title() string {
	if m.IsEdit() {
		return "Edit Price Entry"
	}
	return "Add New Price Entry"
}

// Errors returns the inline messages currently shown.
func (m EntryFormModel) Errors() map[string]string {
	out := make(map[string]string, len(m.errors))
	for k, v := range m.errors {
		out[k] = v
	}
	return out
}

// SetFieldError shows msg under field, used for server-side checks such as duplicates.
func (m *EntryFormModel) SetFieldError(field, msg string) {
	m.errors[field] = msg
}

// SetSaving toggles the in-flight state that blocks double submission.
func (m *EntryFormModel) SetSaving(saving bool) {
	m.saving = saving
}

// Saving reports whether a submission is in flight.
func (m EntryFormModel) Saving() bool { return m.saving }

// Form returns the raw field values.
func (m EntryFormModel) Form() board.EntryForm {
	return board.EntryForm{
		ID:        m.id,
		Vegetable: m.vegetable.Value(),
		Price:     m.price.Value(),
		Unit:      m.unit,
		Quantity:  m.quantity.Value(),
		Status:    string(m.status),
		Notes:     m.notes.Value(),
	}
}

// Update handles keys and combobox notifications.
func (m EntryFormModel) Update(msg tea.Msg) (EntryFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ComboboxChangedMsg:
		if msg.ID == EntryVegetableID {
			m.errors.clear(board.FieldVegetable)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forward(msg)
}

func (m EntryFormModel) handleKey(msg tea.KeyMsg) (EntryFormModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.focus == entryFieldVegetable && m.vegetable.IsOpen() {
			m.vegetable.Close()
			return m, nil
		}
		return m, func() tea.Msg { return CloseModalMsg{} }

	case "ctrl+s":
		return m.submit()

	case "tab":
		return m, m.setFocus(m.nextFocus(1))

	case "shift+tab":
		return m, m.setFocus(m.nextFocus(-1))

	case "enter":
		if m.focus == entryFieldVegetable {
			break
		}
		return m.submit()
	}

	switch m.focus {
	case entryFieldUnit:
		if step := choiceStep(msg); step != 0 {
			m.unit = cycle(model.Units, m.unit, step)
			m.errors.clear(board.FieldUnit)
		}
		return m, nil

	case entryFieldStatus:
		if step := choiceStep(msg); step != 0 {
			m.status = cycle(model.Statuses, m.status, step)
			m.errors.clear(board.FieldStatus)
		}
		return m, nil
	}

	return m.forward(msg)
}

func (m EntryFormModel) forward(msg tea.Msg) (EntryFormModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case entryFieldVegetable:
		before := m.vegetable.Value()
		m.vegetable, cmd = m.vegetable.Update(msg)
		if m.vegetable.Value() != before {
			m.errors.clear(board.FieldVegetable)
		}
	case entryFieldPrice:
		before := m.price.Value()
		m.price, cmd = m.price.Update(msg)
		if m.price.Value() != before {
			m.errors.clear(board.FieldPrice)
		}
	case entryFieldQuantity:
		before := m.quantity.Value()
		m.quantity, cmd = m.quantity.Update(msg)
		if m.quantity.Value() != before {
			m.errors.clear(board.FieldQuantity)
		}
	case entryFieldNotes:
		m.notes, cmd = m.notes.Update(msg)
	}
	return m, cmd
}

func (m EntryFormModel) submit() (EntryFormModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	draft, errs := board.ValidateEntry(m.Form())
	m.errors = fieldErrors(errs)
	if len(errs) > 0 {
		return m, nil
	}

	m.saving = true
	origin := m.origin
	return m, func() tea.Msg {
		return EntrySubmittedMsg{Draft: draft, Origin: origin}
	}
}

func (m EntryFormModel) nextFocus(step int) int {
	next := m.focus
	for i := 0; i < entryFieldCount; i++ {
		next = (next + step + entryFieldCount) % entryFieldCount
		if next != entryFieldVegetable || !m.vegetable.Disabled() {
			return next
		}
	}
	return m.focus
}

func (m *EntryFormModel) setFocus(field int) tea.Cmd {
	m.focus = field
	m.vegetable.Blur()
	m.price.Blur()
	m.quantity.Blur()
	m.notes.Blur()

	switch field {
	case entryFieldVegetable:
		return m.vegetable.Focus()
	case entryFieldPrice:
		return m.price.Focus()
	case entryFieldQuantity:
		return m.quantity.Focus()
	case entryFieldNotes:
		return m.notes.Focus()
	}
	return nil
}

func choiceStep(msg tea.KeyMsg) int {
	switch msg.String() {
	case "right", "l", " ":
		return 1
	case "left", "h":
		return -1
	}
	return 0
}

// View renders the modal body.
func (m EntryFormModel) View() string {
	button := "[ Save ]"
	if m.IsEdit() {
		button = "[ Update ]"
	}
	if m.saving {
		button = "Saving..."
	}

	fields := []string{
		m.theme.Title.Render(m.Title()),
		renderField(m.theme, "Vegetable", m.vegetable.View(), m.errors[board.FieldVegetable], m.focus == entryFieldVegetable),
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderField(m.theme, "Price (₱)", renderInput(m.theme, m.price, m.errors[board.FieldPrice] != ""), m.errors[board.FieldPrice], m.focus == entryFieldPrice),
			"  ",
			renderField(m.theme, "Unit", renderChoice(m.theme, m.unit, m.focus == entryFieldUnit), m.errors[board.FieldUnit], m.focus == entryFieldUnit),
		),
		lipgloss.JoinHorizontal(lipgloss.Top,
			renderField(m.theme, "Quantity", renderInput(m.theme, m.quantity, m.errors[board.FieldQuantity] != ""), m.errors[board.FieldQuantity], m.focus == entryFieldQuantity),
			"  ",
			renderField(m.theme, "Status", renderChoice(m.theme, string(m.status), m.focus == entryFieldStatus), m.errors[board.FieldStatus], m.focus == entryFieldStatus),
		),
		renderField(m.theme, "Notes", renderInput(m.theme, m.notes, false), "", m.focus == entryFieldNotes),
		"",
		m.theme.Bold.Render(button) + m.theme.Muted.Render("   ctrl+s save • tab next field • esc cancel"),
	}

	return m.theme.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, fields...))
}
