package tui

import (
	"context"
	"time"

	"github.com/Veraticus/veggie-board/internal/api"
	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/Veraticus/veggie-board/internal/session"
	"github.com/Veraticus/veggie-board/internal/tui/components"
	"github.com/Veraticus/veggie-board/internal/tui/themes"
)

// Client is the subset of the price API the TUI calls.
type Client interface {
	session.Authenticator
	ReadAll(ctx context.Context) ([]model.PriceEntry, error)
	ReadByCommissioner(ctx context.Context, commissionerID int) (api.CommissionerEntries, error)
	Save(ctx context.Context, commissionerID int, draft model.EntryDraft) (string, error)
	BulkUpdate(ctx context.Context, updates []model.PriceUpdate) (api.BulkResult, error)
	Delete(ctx context.Context, commissionerID, id int) (string, error)
}

// Config holds TUI configuration.
type Config struct {
	Theme          themes.Theme
	Client         Client
	Session        *session.Session
	StartPage      Page
	RecordDir      string
	Vegetables     []string
	RequestTimeout time.Duration
	RedirectDelay  time.Duration
	NoticeTimeout  time.Duration
	Width          int
	Height         int
	ShowHelp       bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:          themes.Default,
		Vegetables:     model.Vegetables,
		RequestTimeout: 30 * time.Second,
		RedirectDelay:  2 * time.Second,
		NoticeTimeout:  components.NotificationTimeout,
		Width:          100,
		Height:         30,
	}
}

// WithClient sets the API client.
func WithClient(client Client) Option {
	return func(c *Config) {
		c.Client = client
	}
}

// WithSession sets the session used for authentication state.
func WithSession(s *session.Session) Option {
	return func(c *Config) {
		c.Session = s
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithStartPage opens page instead of the one saved in the session.
func WithStartPage(page Page) Option {
	return func(c *Config) {
		c.StartPage = page
	}
}

// WithVegetables replaces the vegetable suggestions.
func WithVegetables(vegetables []string) Option {
	return func(c *Config) {
		c.Vegetables = vegetables
	}
}

// WithRequestTimeout bounds each API call.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.RequestTimeout = d
	}
}

// WithRedirectDelay sets how long a notice stays before the follow-up page change.
func WithRedirectDelay(d time.Duration) Option {
	return func(c *Config) {
		c.RedirectDelay = d
	}
}

// WithHelp starts with the full key help expanded.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}

// WithRecording writes every rendered frame under dir for debugging.
func WithRecording(dir string) Option {
	return func(c *Config) {
		c.RecordDir = dir
	}
}

// WithNoticeTimeout sets how long notifications stay on screen.
func WithNoticeTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.NoticeTimeout = d
	}
}
