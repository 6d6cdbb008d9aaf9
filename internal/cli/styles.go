// Package cli provides styled terminal output and prompts for the vegboard commands.
package cli

import (
	"strings"

	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the board's leafy green.
	PrimaryColor = lipgloss.Color("#2E9E5B")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4CAF50")
	// WarningColor indicates warnings and low quality produce.
	WarningColor = lipgloss.Color("#F5A623")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#E5484D")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#5DADE2")
	// SubtleColor indicates less prominent text.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().Foreground(SubtleColor)

	// HeaderStyle is used for table headers.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)

	// PromptStyle is used for interactive prompts.
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)

	// BoxStyle is used for bordered summaries.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠"
	InfoIcon    = "ℹ"
	BoardIcon   = "🥕"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the board icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(BoardIcon + " " + title)
}

// FormatPrompt formats a prompt label.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + ": ")
}

// FormatStatus colors a quality status.
func FormatStatus(status model.Status) string {
	if status == model.StatusLow {
		return WarningStyle.Render(string(status))
	}
	return SuccessStyle.Render(string(status))
}

// RenderBox renders key/value lines in a bordered box under title.
func RenderBox(title string, lines ...string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.UnsetMargins().Render(title),
		strings.Join(lines, "\n"),
	)
	return BoxStyle.Render(body)
}
