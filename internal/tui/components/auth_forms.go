package components

import (
	"strings"

	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/Veraticus/veggie-board/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// authForm is the shared machinery of the login and signup pages:
// a column of text inputs with inline errors and a busy flag.
type authForm struct {
	theme  themes.Theme
	errors fieldErrors
	fields []string
	labels []string
	inputs []textinput.Model
	focus  int
	busy   bool
}

func (f *authForm) setFocus(i int) tea.Cmd {
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
			continue
		}
		f.inputs[j].Blur()
	}
	return cmd
}

func (f *authForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.errors = fieldErrors{}
	f.busy = false
}

func (f *authForm) value(i int) string {
	return f.inputs[i].Value()
}

// handleKey moves focus or edits the focused input. It reports true when
// the key asks for submission.
func (f *authForm) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "tab", "down":
		return f.setFocus((f.focus + 1) % len(f.inputs)), false
	case "shift+tab", "up":
		return f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs)), false
	case "enter":
		if f.focus < len(f.inputs)-1 {
			return f.setFocus(f.focus + 1), false
		}
		return nil, true
	case "ctrl+s":
		return nil, true
	}

	before := f.inputs[f.focus].Value()
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.inputs[f.focus].Value() != before {
		f.errors.clear(f.fields[f.focus])
	}
	return cmd, false
}

func (f authForm) view(title, subtitle, button, footer string) string {
	parts := []string{
		f.theme.Title.Render(title),
		f.theme.Subtitle.Render(subtitle),
	}
	for i, in := range f.inputs {
		errMsg := f.errors[f.fields[i]]
		parts = append(parts, renderField(f.theme, f.labels[i], renderInput(f.theme, in, errMsg != ""), errMsg, i == f.focus))
	}
	if f.busy {
		button = "Please wait..."
	}
	parts = append(parts, "", f.theme.Bold.Render(button), f.theme.Muted.Render(footer))
	return f.theme.BorderedBox.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// LoginFormModel is the sign-in page.
type LoginFormModel struct {
	authForm
}

// NewLoginForm creates an empty sign-in form.
func NewLoginForm(theme themes.Theme) LoginFormModel {
	return LoginFormModel{authForm{
		theme:  theme,
		errors: fieldErrors{},
		fields: []string{board.FieldEmail, board.FieldPassword},
		labels: []string{"Email", "Password"},
		inputs: []textinput.Model{
			newTextInput("you@example.com", 32),
			newPasswordInput("Password", 32),
		},
	}}
}

// Init focuses the email field.
func (m *LoginFormModel) Init() tea.Cmd { return m.setFocus(0) }

// Reset blanks the form after a successful sign-in.
func (m *LoginFormModel) Reset() { m.reset() }

// SetBusy toggles the in-flight state.
func (m *LoginFormModel) SetBusy(busy bool) { m.busy = busy }

// Errors returns the inline messages currently shown.
func (m LoginFormModel) Errors() map[string]string { return copyErrors(m.errors) }

// Update handles keys and submits validated credentials.
func (m LoginFormModel) Update(msg tea.Msg) (LoginFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	cmd, submit := m.handleKey(keyMsg)
	if !submit || m.busy {
		return m, cmd
	}

	email := strings.TrimSpace(m.value(0))
	password := m.value(1)
	m.errors = fieldErrors(board.ValidateLogin(email, password))
	if len(m.errors) > 0 {
		return m, nil
	}

	m.busy = true
	return m, func() tea.Msg {
		return LoginSubmittedMsg{Email: email, Password: password}
	}
}

// View renders the form.
func (m LoginFormModel) View() string {
	return m.view("Commissioner Login", "Sign in to manage your price entries",
		"[ Login ]", "enter next/submit • tab move • ctrl+n create an account")
}

// SignupFormModel is the registration page.
type SignupFormModel struct {
	authForm
}

// NewSignupForm creates an empty registration form.
func NewSignupForm(theme themes.Theme) SignupFormModel {
	return SignupFormModel{authForm{
		theme:  theme,
		errors: fieldErrors{},
		fields: []string{board.FieldName, board.FieldEmail, board.FieldPassword, board.FieldConfirm},
		labels: []string{"Full Name", "Email", "Password", "Confirm Password"},
		inputs: []textinput.Model{
			newTextInput("Juan dela Cruz", 32),
			newTextInput("you@example.com", 32),
			newPasswordInput("At least 6 characters", 32),
			newPasswordInput("Repeat password", 32),
		},
	}}
}

// Init focuses the name field.
func (m *SignupFormModel) Init() tea.Cmd { return m.setFocus(0) }

// Reset blanks the form after a successful registration.
func (m *SignupFormModel) Reset() { m.reset() }

// SetBusy toggles the in-flight state.
func (m *SignupFormModel) SetBusy(busy bool) { m.busy = busy }

// Errors returns the inline messages currently shown.
func (m SignupFormModel) Errors() map[string]string { return copyErrors(m.errors) }

// Update handles keys and submits a validated registration.
func (m SignupFormModel) Update(msg tea.Msg) (SignupFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	cmd, submit := m.handleKey(keyMsg)
	if !submit || m.busy {
		return m, cmd
	}

	name := strings.TrimSpace(m.value(0))
	email := strings.TrimSpace(m.value(1))
	password := m.value(2)
	confirm := m.value(3)

	m.errors = fieldErrors(board.ValidateSignup(name, email, password, confirm))
	if len(m.errors) > 0 {
		return m, nil
	}

	m.busy = true
	return m, func() tea.Msg {
		return SignupSubmittedMsg{Name: name, Email: email, Password: password}
	}
}

// View renders the form.
func (m SignupFormModel) View() string {
	return m.view("Become a Commissioner", "Create an account to submit prices",
		"[ Create Account ]", "enter next/submit • tab move • ctrl+l back to login")
}

func copyErrors(e fieldErrors) map[string]string {
	out := make(map[string]string, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
