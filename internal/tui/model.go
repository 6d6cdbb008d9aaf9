package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/Veraticus/veggie-board/internal/session"
	"github.com/Veraticus/veggie-board/internal/tui/components"
	"github.com/Veraticus/veggie-board/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Page is one screen of the application. Its value is what gets saved as
// the last open page.
type Page string

// Pages.
const (
	PageLanding   Page = "landing"
	PageBoard     Page = "price-board"
	PageDashboard Page = "dashboard"
	PageLogin     Page = "login"
	PageSignup    Page = "signup"
)

// ParsePage maps a saved page name back to a Page.
func ParsePage(s string) (Page, bool) {
	switch p := Page(s); p {
	case PageLanding, PageBoard, PageDashboard, PageLogin, PageSignup:
		return p, true
	}
	return "", false
}

// Modal is the dialog shown over the current page.
type Modal int

// Modals.
const (
	ModalNone Modal = iota
	ModalEntry
	ModalBulk
	ModalDelete
)

// User-facing messages.
const (
	MsgLoginToAdd     = "Please login to add price entries."
	MsgLoginToEdit    = "Please login to edit price entries."
	MsgLoginToSave    = "Please login to save entries."
	MsgLoginToUpdate  = "Please login to update prices."
	MsgLoginToDelete  = "Please login to delete entries."
	MsgAccountExists  = "Account already exists. Please log in."
	MsgAccountCreated = "Account created successfully!"
	MsgLoggedOut      = "Logged out successfully."
	MsgEntrySaved     = "Entry saved successfully."
	MsgEntryDeleted   = "Entry deleted successfully."
	msgWelcomeBackFmt = "Welcome back, %s!"
)

// Model holds the main TUI state.
type Model struct {
	ctx           context.Context
	client        Client
	session       *session.Session
	state         *board.State
	startup       tea.Cmd
	theme         themes.Theme
	keymap        KeyMap
	help          help.Model
	spinner       spinner.Model
	notifications components.NotificationsModel
	filters       components.FilterBarModel
	boardTable    components.PriceTableModel
	dashTable     components.PriceTableModel
	stats         components.StatsPanelModel
	loginForm     components.LoginFormModel
	signupForm    components.SignupFormModel
	entryForm     components.EntryFormModel
	bulk          components.BulkUpdateModel
	confirm       components.ConfirmModel
	config        Config
	page          Page
	modal         Modal
	modalID       uint64
	loading       int
	width         int
	height        int
	quitting      bool
}

// New creates the application model. A client and a loaded session are required.
func New(ctx context.Context, opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Client == nil {
		return Model{}, fmt.Errorf("%w: tui requires an API client", common.ErrMissingConfig)
	}
	if cfg.Session == nil {
		return Model{}, fmt.Errorf("%w: tui requires a session", common.ErrMissingConfig)
	}

	return newModel(ctx, cfg), nil
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = cfg.Theme.Muted

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	m := Model{
		ctx:           ctx,
		client:        cfg.Client,
		session:       cfg.Session,
		state:         board.NewState(),
		config:        cfg,
		theme:         cfg.Theme,
		keymap:        DefaultKeyMap(),
		help:          h,
		spinner:       sp,
		notifications: components.NewNotifications(cfg.Theme),
		filters:       components.NewFilterBar(cfg.Vegetables, cfg.Theme),
		boardTable:    components.NewPriceTable(components.LayoutBoard, cfg.Theme),
		dashTable:     components.NewPriceTable(components.LayoutDashboard, cfg.Theme),
		stats:         components.NewStatsPanelModel(cfg.Theme),
		loginForm:     components.NewLoginForm(cfg.Theme),
		signupForm:    components.NewSignupForm(cfg.Theme),
		width:         cfg.Width,
		height:        cfg.Height,
	}
	m.notifications.SetTimeout(cfg.NoticeTimeout)
	m.handleResize()

	page := cfg.StartPage
	if page == "" {
		page = PageLanding
		if saved, ok := ParsePage(cfg.Session.LastPage(ctx)); ok {
			page = saved
		}
	}
	m.page = m.allowedPage(page)
	m.focusPage()

	m.startup = m.refresh()
	return m
}

// Init starts the first loads and focuses the opening page.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startup, m.pageInitCmd())
}

// Page returns the page being shown.
func (m Model) Page() Page { return m.page }

// ActiveModal returns the dialog being shown.
func (m Model) ActiveModal() Modal { return m.modal }

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		m.notifications, _ = m.notifications.Update(msg)
		return m, nil

	case spinner.TickMsg:
		if m.loading == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case components.NotificationExpiredMsg:
		m.notifications, _ = m.notifications.Update(msg)
		return m, nil

	case boardLoadedMsg:
		return m.handleBoardLoaded(msg)

	case dashboardLoadedMsg:
		return m.handleDashboardLoaded(msg)

	case authResultMsg:
		return m.handleAuthResult(msg)

	case logoutDoneMsg:
		if msg.err != nil {
			common.LogError(msg.err, "Failed to clear saved session", nil)
			return m, m.notify(components.NotifyError, common.UserMessage(msg.err))
		}
		return m, m.notify(components.NotifyInfo, MsgLoggedOut)

	case entrySavedMsg:
		return m.handleEntrySaved(msg)

	case bulkSavedMsg:
		return m.handleBulkSaved(msg)

	case entryDeletedMsg:
		return m.handleEntryDeleted(msg)

	case redirectMsg:
		// Only follow through if the user is still where the notice was shown.
		if m.page != PageSignup || m.session.IsAuthenticated() {
			return m, nil
		}
		return m, m.setPage(msg.page)

	case components.CloseModalMsg:
		m.closeModal()
		return m, nil

	case components.LoginSubmittedMsg:
		return m, m.login(msg.Email, msg.Password)

	case components.SignupSubmittedMsg:
		return m, m.signup(msg.Name, msg.Email, msg.Password)

	case components.EntrySubmittedMsg:
		user, err := m.session.RequireUser()
		if err != nil {
			return m, m.requireLogin(MsgLoginToSave)
		}
		return m, m.saveEntry(m.modalID, user.ID, msg.Draft, msg.Origin)

	case components.BulkSubmittedMsg:
		if _, err := m.session.RequireUser(); err != nil {
			return m, m.requireLogin(MsgLoginToUpdate)
		}
		return m, m.bulkUpdate(m.modalID, msg.Updates)

	case components.DeleteConfirmedMsg:
		user, err := m.session.RequireUser()
		if err != nil {
			return m, m.requireLogin(MsgLoginToDelete)
		}
		m.closeModal()
		return m, m.deleteEntry(user.ID, msg.ID)

	case components.ComboboxChangedMsg:
		if m.modal == ModalEntry {
			var cmd tea.Cmd
			m.entryForm, cmd = m.entryForm.Update(msg)
			return m, cmd
		}
		if msg.ID == components.VegetableFilterID {
			m.refreshBoard()
		}
		return m, nil
	}

	// Everything else, such as cursor blinks, goes to whatever has focus.
	return m.forward(msg)
}

// handleKey routes a key press to the modal, the focused form or the page.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.modal != ModalNone {
		return m.forward(msg)
	}

	switch m.page {
	case PageLogin:
		switch msg.String() {
		case "esc":
			return m, m.setPage(PageBoard)
		case "ctrl+n":
			return m, m.setPage(PageSignup)
		}
		return m.forward(msg)

	case PageSignup:
		switch msg.String() {
		case "esc":
			return m, m.setPage(PageBoard)
		case "ctrl+l":
			return m, m.setPage(PageLogin)
		}
		return m.forward(msg)
	}

	if m.page == PageBoard && m.filters.Active() {
		if key.Matches(msg, m.keymap.Back) && !m.filters.ConsumesEscape() {
			m.filters.Blur()
			m.boardTable.Focus()
			return m, nil
		}
		return m.forward(msg)
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keymap.Board):
		return m, m.setPage(PageBoard)
	case key.Matches(msg, m.keymap.Dashboard):
		return m, m.setPage(PageDashboard)
	case key.Matches(msg, m.keymap.Login) && !m.session.IsAuthenticated():
		return m, m.setPage(PageLogin)
	case key.Matches(msg, m.keymap.Logout) && m.session.IsAuthenticated():
		return m, m.startLogout()
	case key.Matches(msg, m.keymap.Refresh):
		return m, m.refresh()
	}

	switch m.page {
	case PageLanding:
		if msg.Type == tea.KeyEnter {
			return m, m.setPage(PageBoard)
		}
		return m, nil

	case PageBoard:
		switch {
		case key.Matches(msg, m.keymap.Search):
			m.boardTable.Blur()
			return m, m.filters.Focus(components.FilterSearch)
		case key.Matches(msg, m.keymap.Filter):
			m.boardTable.Blur()
			return m, m.filters.Focus(components.FilterVegetable)
		case key.Matches(msg, m.keymap.ClearFilters):
			m.filters.Clear()
			m.refreshBoard()
			return m, nil
		case key.Matches(msg, m.keymap.Add):
			return m, m.openAdd()
		}

	case PageDashboard:
		switch {
		case key.Matches(msg, m.keymap.Add):
			return m, m.openAdd()
		case key.Matches(msg, m.keymap.Edit):
			if entry, ok := m.dashTable.Selected(); ok {
				return m, m.openEdit(entry)
			}
			return m, nil
		case key.Matches(msg, m.keymap.Delete):
			if entry, ok := m.dashTable.Selected(); ok {
				return m, m.openDelete(entry)
			}
			return m, nil
		case key.Matches(msg, m.keymap.Bulk):
			return m, m.openBulk()
		}
	}

	return m.forward(msg)
}

// forward passes msg to the component that currently has focus.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.modal {
	case ModalEntry:
		m.entryForm, cmd = m.entryForm.Update(msg)
		return m, cmd
	case ModalBulk:
		m.bulk, cmd = m.bulk.Update(msg)
		return m, cmd
	case ModalDelete:
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}

	switch m.page {
	case PageLogin:
		m.loginForm, cmd = m.loginForm.Update(msg)
	case PageSignup:
		m.signupForm, cmd = m.signupForm.Update(msg)
	case PageBoard:
		if m.filters.Active() {
			before := m.filters.Criteria()
			m.filters, cmd = m.filters.Update(msg)
			if m.filters.Criteria() != before {
				m.refreshBoard()
			}
			return m, cmd
		}
		m.boardTable, cmd = m.boardTable.Update(msg)
	case PageDashboard:
		m.dashTable, cmd = m.dashTable.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleBoardLoaded(msg boardLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = max(m.loading-1, 0)

	if !m.state.Accept(msg.ticket) {
		common.LogDebug("Dropping stale board load", common.Fields{"generation": msg.ticket.Generation})
		return *m, nil
	}
	if msg.err != nil {
		common.LogError(msg.err, "Failed to load price board", nil)
		return *m, m.notify(components.NotifyError, common.UserMessage(msg.err))
	}

	m.state.ApplyBoard(msg.ticket, msg.entries)
	m.filters.SetCommissioners(m.state.CommissionerOptions())
	m.refreshBoard()
	return *m, nil
}

func (m *Model) handleDashboardLoaded(msg dashboardLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = max(m.loading-1, 0)

	if !m.state.Accept(msg.ticket) {
		common.LogDebug("Dropping stale dashboard load", common.Fields{"generation": msg.ticket.Generation})
		return *m, nil
	}
	if msg.err != nil {
		common.LogError(msg.err, "Failed to load dashboard", nil)
		return *m, m.notify(components.NotifyError, common.UserMessage(msg.err))
	}

	m.state.ApplyDashboard(msg.ticket, msg.data.Entries, msg.data.Statistics)
	m.refreshDashboard()
	return *m, nil
}

func (m *Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	m.loginForm.SetBusy(false)
	m.signupForm.SetBusy(false)

	if msg.err != nil {
		if msg.kind == authSignup && errors.Is(msg.err, common.ErrAccountExists) {
			return *m, tea.Batch(
				m.notify(components.NotifyWarning, MsgAccountExists),
				redirectAfter(m.config.RedirectDelay, PageLogin),
			)
		}
		common.LogError(msg.err, "Authentication failed", common.Fields{"signup": msg.kind == authSignup})
		return *m, m.notify(components.NotifyError, common.UserMessage(msg.err))
	}

	common.LogInfo("Commissioner signed in", common.Fields{"commissioner_id": msg.user.ID})

	text := fmt.Sprintf(msgWelcomeBackFmt, msg.user.Name)
	if msg.kind == authSignup {
		m.signupForm.Reset()
		text = MsgAccountCreated
	} else {
		m.loginForm.Reset()
	}

	return *m, tea.Batch(m.notify(components.NotifySuccess, text), m.refresh(), m.setPage(PageDashboard))
}

func (m *Model) handleEntrySaved(msg entrySavedMsg) (tea.Model, tea.Cmd) {
	if m.modal != ModalEntry || msg.modalID != m.modalID {
		common.LogDebug("Dropping save result for a closed form", common.Fields{"vegetable": msg.draft.Vegetable})
		return *m, nil
	}

	m.entryForm.SetSaving(false)

	if msg.duplicate != nil {
		m.entryForm.SetFieldError(board.FieldVegetable, board.DuplicateMessage(msg.draft))
		return *m, nil
	}
	if msg.err != nil {
		common.LogError(msg.err, "Failed to save entry", common.Fields{"vegetable": msg.draft.Vegetable})
		return *m, m.notify(components.NotifyError, common.UserMessage(msg.err))
	}

	message := msg.message
	if message == "" {
		message = MsgEntrySaved
	}
	m.closeModal()
	return *m, tea.Batch(m.notify(components.NotifySuccess, message), m.reloadDashboard())
}

func (m *Model) handleBulkSaved(msg bulkSavedMsg) (tea.Model, tea.Cmd) {
	if m.modal != ModalBulk || msg.modalID != m.modalID {
		common.LogDebug("Dropping bulk result for a closed editor", nil)
		return *m, nil
	}

	m.bulk.SetSaving(false)

	if msg.err != nil {
		common.LogError(msg.err, "Bulk update failed", nil)
		return *m, m.notify(components.NotifyError, common.UserMessage(msg.err))
	}

	m.closeModal()
	kind := components.NotifySuccess
	if msg.result.Partial() {
		kind = components.NotifyWarning
	}
	return *m, tea.Batch(m.notify(kind, msg.result.Summary()), m.reloadDashboard())
}

func (m *Model) handleEntryDeleted(msg entryDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		common.LogError(msg.err, "Failed to delete entry", common.Fields{"id": msg.id})
		return *m, m.notify(components.NotifyError, common.UserMessage(msg.err))
	}

	m.state.ApplyDeleted(msg.id)
	m.refreshBoard()
	m.refreshDashboard()

	message := msg.message
	if message == "" {
		message = MsgEntryDeleted
	}
	return *m, tea.Batch(m.notify(components.NotifySuccess, message), m.reloadDashboard())
}

// setPage switches page, remembering it for the next start.
func (m *Model) setPage(page Page) tea.Cmd {
	page = m.allowedPage(page)
	m.page = page
	m.focusPage()

	sess, ctx := m.session, m.ctx
	save := func() tea.Msg {
		if err := sess.SaveLastPage(ctx, string(page)); err != nil {
			common.LogError(err, "Failed to remember page", common.Fields{"page": page})
		}
		return nil
	}

	return tea.Batch(save, m.pageInitCmd())
}

// allowedPage redirects pages that do not fit the signed-in state.
func (m Model) allowedPage(page Page) Page {
	authed := m.session.IsAuthenticated()
	switch {
	case page == PageDashboard && !authed:
		return PageLogin
	case (page == PageLogin || page == PageSignup) && authed:
		return PageDashboard
	}
	return page
}

func (m *Model) focusPage() {
	m.boardTable.Blur()
	m.dashTable.Blur()
	m.filters.Blur()

	switch m.page {
	case PageBoard:
		m.boardTable.Focus()
	case PageDashboard:
		m.dashTable.Focus()
	}
}

func (m *Model) pageInitCmd() tea.Cmd {
	switch m.page {
	case PageLogin:
		return m.loginForm.Init()
	case PageSignup:
		return m.signupForm.Init()
	}
	return nil
}

// startLogout drops the commissioner's data and shows the public board.
// The in-memory session is cleared right away so no load started before
// the saved record is removed can bring the dashboard back.
func (m *Model) startLogout() tea.Cmd {
	m.session.Forget()
	m.closeModal()
	m.state.Reset()
	m.dashTable.SetEntries(nil)
	m.stats.SetStatistics(model.Statistics{})
	m.refreshBoard()
	return tea.Batch(m.logout(), m.setPage(PageBoard))
}

func (m *Model) requireLogin(message string) tea.Cmd {
	m.closeModal()
	return tea.Batch(m.notify(components.NotifyWarning, message), m.setPage(PageLogin))
}

func (m *Model) openAdd() tea.Cmd {
	if !m.session.IsAuthenticated() {
		return m.requireLogin(MsgLoginToAdd)
	}
	m.entryForm = components.NewEntryForm(m.config.Vegetables, m.theme)
	m.openModal(ModalEntry)
	return m.entryForm.Init()
}

func (m *Model) openEdit(entry model.PriceEntry) tea.Cmd {
	if !m.session.IsAuthenticated() {
		return m.requireLogin(MsgLoginToEdit)
	}
	m.entryForm = components.NewEditEntryForm(m.config.Vegetables, entry, m.theme)
	m.openModal(ModalEntry)
	return m.entryForm.Init()
}

func (m *Model) openBulk() tea.Cmd {
	if !m.session.IsAuthenticated() {
		return m.requireLogin(MsgLoginToUpdate)
	}
	m.bulk = components.NewBulkUpdate(m.state.OwnEntries(), m.theme)
	m.openModal(ModalBulk)
	return m.bulk.Init()
}

func (m *Model) openDelete(entry model.PriceEntry) tea.Cmd {
	if !m.session.IsAuthenticated() {
		return m.requireLogin(MsgLoginToDelete)
	}
	m.confirm = components.NewConfirm(entry.ID, components.DefaultDeleteMessage, m.theme)
	m.openModal(ModalDelete)
	return nil
}

func (m *Model) openModal(modal Modal) {
	m.modal = modal
	m.modalID++
	m.boardTable.Blur()
	m.dashTable.Blur()
	m.filters.Blur()
}

// closeModal hides the dialog. Results still in flight for it are dropped.
func (m *Model) closeModal() {
	if m.modal == ModalNone {
		return
	}
	m.modal = ModalNone
	m.modalID++
	m.focusPage()
}

func (m *Model) notify(kind components.NotificationKind, text string) tea.Cmd {
	return m.notifications.Push(kind, text)
}

// refreshBoard reruns the filter pipeline into the board table.
func (m *Model) refreshBoard() {
	m.boardTable.SetEntries(m.state.View(m.filters.Criteria()))
}

func (m *Model) refreshDashboard() {
	m.dashTable.SetEntries(m.state.OwnEntries())
	m.stats.SetStatistics(m.state.Statistics())
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	// nav bar, filter bar, counts, help and borders
	tableHeight := max(m.height-14, 5)
	m.boardTable.SetSize(m.width-4, tableHeight)
	m.dashTable.SetSize(m.width-4, max(tableHeight-4, 5))
	m.stats.Resize(m.width - 4)
	m.stats.SetCompact(m.width < 90)
	m.help.Width = m.width
}
