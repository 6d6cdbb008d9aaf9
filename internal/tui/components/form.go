package components

import (
	"github.com/Veraticus/veggie-board/internal/tui/themes"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// fieldErrors holds the inline message per form field.
type fieldErrors map[string]string

func (e fieldErrors) clear(field string) {
	delete(e, field)
}

// newTextInput creates an unprompted input with a steady cursor.
func newTextInput(placeholder string, width int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.Width = width
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func newPasswordInput(placeholder string, width int) textinput.Model {
	in := newTextInput(placeholder, width)
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	return in
}

// renderField lays out a label, its control and any inline error.
func renderField(theme themes.Theme, label, control, errMsg string, focused bool) string {
	labelStyle := theme.Label
	if focused {
		labelStyle = labelStyle.Foreground(theme.Primary)
	}

	parts := []string{labelStyle.Render(label), control}
	if errMsg != "" {
		parts = append(parts, theme.FieldError.Render("⚠ "+errMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderInput wraps a text input in the themed border.
func renderInput(theme themes.Theme, in textinput.Model, hasError bool) string {
	style := theme.Input
	if in.Focused() {
		style = theme.InputFocused
	}
	if hasError {
		style = style.BorderForeground(theme.Error)
	}
	return style.Render(in.View())
}

// renderChoice shows a cycling selector.
func renderChoice(theme themes.Theme, value string, focused bool) string {
	style := theme.Input
	if focused {
		style = theme.InputFocused
	}
	return style.Render("‹ " + value + " ›")
}

// cycle steps through options, wrapping at both ends.
func cycle[T comparable](options []T, current T, step int) T {
	if len(options) == 0 {
		return current
	}
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	return options[(idx+step%len(options)+len(options))%len(options)]
}
