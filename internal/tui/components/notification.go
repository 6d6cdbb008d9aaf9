package components

import (
	"time"

	"github.com/Veraticus/veggie-board/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NotificationTimeout is how long a notification stays on screen.
const NotificationTimeout = 5 * time.Second

// NotificationKind selects the notification's icon and colour.
type NotificationKind int

// Notification kinds.
const (
	NotifyInfo NotificationKind = iota
	NotifySuccess
	NotifyWarning
	NotifyError
)

// Notification is one transient message.
type Notification struct {
	Text string
	Kind NotificationKind
	ID   int
}

// NotificationExpiredMsg removes the notification with ID.
type NotificationExpiredMsg struct {
	ID int
}

// NotificationsModel is a stack of auto-dismissing notifications.
type NotificationsModel struct {
	theme   themes.Theme
	items   []Notification
	timeout time.Duration
	nextID  int
	width   int
}

// NewNotifications creates an empty notification stack.
func NewNotifications(theme themes.Theme) NotificationsModel {
	return NotificationsModel{
		theme:   theme,
		timeout: NotificationTimeout,
		width:   60,
	}
}

// Push shows text and returns the command that dismisses it after the timeout.
func (m *NotificationsModel) Push(kind NotificationKind, text string) tea.Cmd {
	m.nextID++
	id := m.nextID
	m.items = append(m.items, Notification{ID: id, Kind: kind, Text: text})

	return tea.Tick(m.timeout, func(time.Time) tea.Msg {
		return NotificationExpiredMsg{ID: id}
	})
}

// SetTimeout changes how long new notifications stay visible.
func (m *NotificationsModel) SetTimeout(d time.Duration) {
	m.timeout = d
}

// Dismiss removes the newest notification.
func (m *NotificationsModel) Dismiss() {
	if len(m.items) > 0 {
		m.items = m.items[:len(m.items)-1]
	}
}

// Items returns the visible notifications, oldest first.
func (m NotificationsModel) Items() []Notification {
	return append([]Notification(nil), m.items...)
}

// Update removes expired notifications.
func (m NotificationsModel) Update(msg tea.Msg) (NotificationsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case NotificationExpiredMsg:
		kept := m.items[:0:0]
		for _, n := range m.items {
			if n.ID != msg.ID {
				kept = append(kept, n)
			}
		}
		m.items = kept

	case tea.WindowSizeMsg:
		m.width = min(max(msg.Width/2, 30), 80)
	}

	return m, nil
}

// View renders the stack, or "" when empty.
func (m NotificationsModel) View() string {
	if len(m.items) == 0 {
		return ""
	}

	rows := make([]string, 0, len(m.items))
	for _, n := range m.items {
		style, icon := m.styleFor(n.Kind)
		rows = append(rows, style.Width(m.width).Render(icon+" "+n.Text))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rows...)
}

func (m NotificationsModel) styleFor(kind NotificationKind) (lipgloss.Style, string) {
	base := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	switch kind {
	case NotifySuccess:
		return base.BorderForeground(m.theme.Success).Foreground(m.theme.Success), "✓"
	case NotifyWarning:
		return base.BorderForeground(m.theme.Warning).Foreground(m.theme.Warning), "!"
	case NotifyError:
		return base.BorderForeground(m.theme.Error).Foreground(m.theme.Error), "✗"
	default:
		return base.BorderForeground(m.theme.Info).Foreground(m.theme.Info), "i"
	}
}
