// Package themes holds the lipgloss styles used by the TUI.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	Placeholder   lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
	InputDisabled lipgloss.Style
	Dropdown      lipgloss.Style
	FieldError    lipgloss.Style
	Label         lipgloss.Style
	Price         lipgloss.Style
	BadgeGood     lipgloss.Style
	BadgeLow      lipgloss.Style
	NavActive     lipgloss.Style
	NavInactive   lipgloss.Style
	StatCard      lipgloss.Style
	Modal         lipgloss.Style
	BorderedBox   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	MutedColor    lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
	Info          lipgloss.Color
}

type palette struct {
	primary, secondary, success, warning, danger, info lipgloss.Color
	foreground, subtle, muted, border, surface        lipgloss.Color
	onPrimary                                         lipgloss.Color
}

func build(p palette) Theme {
	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.border).
		Padding(0, 1)

	return Theme{
		Primary:    p.primary,
		Secondary:  p.secondary,
		Border:     p.border,
		Foreground: p.foreground,
		MutedColor: p.muted,
		Error:      p.danger,
		Warning:    p.warning,
		Success:    p.success,
		Info:       p.info,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.subtle),
		Normal: lipgloss.NewStyle().
			Foreground(p.foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground),
		Muted: lipgloss.NewStyle().
			Foreground(p.muted),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.onPrimary).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(p.surface).
			Foreground(p.foreground),
		Placeholder: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),

		Input:        input,
		InputFocused: input.BorderForeground(p.primary),
		InputDisabled: input.
			BorderForeground(p.surface).
			Foreground(p.muted),
		Dropdown: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		FieldError: lipgloss.NewStyle().
			Foreground(p.danger),
		Label: lipgloss.NewStyle().
			Foreground(p.subtle).
			Bold(true),

		Price: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		BadgeGood: lipgloss.NewStyle().
			Foreground(p.onPrimary).
			Background(p.success).
			Padding(0, 1),
		BadgeLow: lipgloss.NewStyle().
			Foreground(p.onPrimary).
			Background(p.warning).
			Padding(0, 1),

		NavActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Underline(true).
			Padding(0, 1),
		NavInactive: lipgloss.NewStyle().
			Foreground(p.subtle).
			Padding(0, 1),
		StatCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 2).
			Width(22),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.border).
			Padding(0, 1),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(p.danger).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.info).
			Bold(true),
	}
}

// Default is the default theme, in market greens.
var Default = build(palette{
	primary:    lipgloss.Color("#1a5c38"),
	secondary:  lipgloss.Color("#4ade80"),
	success:    lipgloss.Color("#16a34a"),
	warning:    lipgloss.Color("#f59e0b"),
	danger:     lipgloss.Color("#ef4444"),
	info:       lipgloss.Color("#3b82f6"),
	foreground: lipgloss.Color("#fafafa"),
	subtle:     lipgloss.Color("#a3a3a3"),
	muted:      lipgloss.Color("#737373"),
	border:     lipgloss.Color("#404040"),
	surface:    lipgloss.Color("#262626"),
	onPrimary:  lipgloss.Color("#fafafa"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(palette{
	primary:    lipgloss.Color("#a6e3a1"),
	secondary:  lipgloss.Color("#94e2d5"),
	success:    lipgloss.Color("#a6e3a1"),
	warning:    lipgloss.Color("#f9e2af"),
	danger:     lipgloss.Color("#f38ba8"),
	info:       lipgloss.Color("#89dceb"),
	foreground: lipgloss.Color("#cdd6f4"),
	subtle:     lipgloss.Color("#a6adc8"),
	muted:      lipgloss.Color("#6c7086"),
	border:     lipgloss.Color("#45475a"),
	surface:    lipgloss.Color("#313244"),
	onPrimary:  lipgloss.Color("#1e1e2e"),
})

// Names lists the selectable theme names.
var Names = []string{"default", "catppuccin-mocha"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// StatusBadge renders a quality status as a coloured badge.
func (t Theme) StatusBadge(status string) string {
	if status == "Low Quality" {
		return t.BadgeLow.Render(status)
	}
	return t.BadgeGood.Render(status)
}
