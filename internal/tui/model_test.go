package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/veggie-board/internal/api"
	"github.com/Veraticus/veggie-board/internal/board"
	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/Veraticus/veggie-board/internal/session"
	"github.com/Veraticus/veggie-board/internal/tui/components"
	tuitesting "github.com/Veraticus/veggie-board/internal/tui/testing"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "secret"

type memStore struct {
	data map[string]string
	mu   sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (s *memStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

// fakeClient serves a small fixed board: Ana (7) owns Carrot and Onion,
// Ben (8) owns Cabbage.
type fakeClient struct {
	users      map[string]model.Commissioner
	readOwnErr error
	saveErr    error
	bulkErr    error
	deleteErr  error
	entries    []model.PriceEntry
	saved      []model.EntryDraft
	deleted    []int
	bulkCalls  [][]model.PriceUpdate
	bulkResult api.BulkResult
	readOwn    int
	mu         sync.Mutex
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		users: map[string]model.Commissioner{
			"ana@example.com": {ID: 7, Name: "Ana", Email: "ana@example.com"},
		},
		entries: []model.PriceEntry{
			{ID: 1, VegetableName: "Carrot", Price: 45.5, Unit: "kg", Status: model.StatusGood, CommissionerName: "Ana", CommissionerID: 7, UpdatedAt: "2024-05-03 09:00:00"},
			{ID: 2, VegetableName: "Onion", Price: 120, Unit: "kg", Status: model.StatusLow, CommissionerName: "Ana", CommissionerID: 7, UpdatedAt: "2024-05-01 09:00:00"},
			{ID: 3, VegetableName: "Cabbage", Price: 60, Unit: "kg", Status: model.StatusGood, CommissionerName: "Ben", CommissionerID: 8, UpdatedAt: "2024-05-02 09:00:00"},
		},
		bulkResult: api.BulkResult{Message: "Prices updated successfully", UpdatedCount: 1},
	}
}

func (f *fakeClient) Login(_ context.Context, email, password string) (model.Commissioner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok || password != testPassword {
		return model.Commissioner{}, &api.Error{Endpoint: "login.php", Message: api.MsgLoginFailed}
	}
	return user, nil
}

func (f *fakeClient) Signup(_ context.Context, name, email, _ string) (model.Commissioner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[email]; exists {
		return model.Commissioner{}, &api.Error{Endpoint: "signup.php", Message: "Email already registered"}
	}
	user := model.Commissioner{ID: 100 + len(f.users), Name: name, Email: email}
	f.users[email] = user
	return user, nil
}

func (f *fakeClient) ReadAll(context.Context) ([]model.PriceEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.PriceEntry(nil), f.entries...), nil
}

func (f *fakeClient) ReadByCommissioner(_ context.Context, id int) (api.CommissionerEntries, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readOwn++
	if f.readOwnErr != nil {
		return api.CommissionerEntries{}, f.readOwnErr
	}

	var own []model.PriceEntry
	var sum float64
	stats := model.Statistics{}
	for _, e := range f.entries {
		if e.CommissionerID != id {
			continue
		}
		own = append(own, e)
		sum += e.Price
		if e.Status == model.StatusLow {
			stats.StaleCount++
		}
	}
	stats.TotalVegetables = len(own)
	if len(own) > 0 {
		stats.AveragePrice = sum / float64(len(own))
		stats.LastUpdate = own[0].UpdatedAt
	}
	return api.CommissionerEntries{Entries: own, Statistics: stats}, nil
}

func (f *fakeClient) Save(_ context.Context, _ int, draft model.EntryDraft) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, draft)
	if draft.IsEdit() {
		return "Price entry updated successfully", nil
	}
	return "Price entry created successfully", nil
}

func (f *fakeClient) BulkUpdate(_ context.Context, updates []model.PriceUpdate) (api.BulkResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bulkCalls = append(f.bulkCalls, updates)
	return f.bulkResult, f.bulkErr
}

func (f *fakeClient) Delete(_ context.Context, _ int, id int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.entries[:0:0]
	for _, e := range f.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return "Item deleted successfully", nil
}

type testApp struct {
	client  *fakeClient
	session *session.Session
	store   *memStore
}

func newTestDeps(t *testing.T, signedIn bool) testApp {
	t.Helper()
	deps := testApp{client: newFakeClient(), store: newMemStore()}
	deps.session = session.New(deps.store)
	if signedIn {
		_, err := deps.session.Login(context.Background(), deps.client, "ana@example.com", testPassword)
		require.NoError(t, err)
	}
	return deps
}

func (d testApp) start(t *testing.T, opts ...Option) Model {
	t.Helper()
	opts = append([]Option{
		WithClient(d.client),
		WithSession(d.session),
		WithSize(140, 40),
		WithNoticeTimeout(time.Millisecond),
		WithRedirectDelay(time.Millisecond),
	}, opts...)

	m, err := New(context.Background(), opts...)
	require.NoError(t, err)
	m, _ = pump(t, m, m.Init())
	return m
}

// pump runs cmds and feeds their messages back into the model until nothing
// is left. Spinner frames and notification expiry are not fed back so the
// loop settles and notifications stay inspectable.
func pump(t *testing.T, m Model, cmds ...tea.Cmd) (Model, []tea.Msg) {
	t.Helper()

	var seen []tea.Msg
	queue := append([]tea.Cmd(nil), cmds...)
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 500, "commands did not settle")

		cmd := queue[0]
		queue = queue[1:]
		for _, msg := range tuitesting.Collect(cmd) {
			seen = append(seen, msg)
			switch msg.(type) {
			case spinner.TickMsg, components.NotificationExpiredMsg:
				continue
			}
			next, c := m.Update(msg)
			m = next.(Model)
			if c != nil {
				queue = append(queue, c)
			}
		}
	}
	return m, seen
}

// press sends msgs as user input, settling commands after each one.
func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		m, _ = pump(t, next.(Model), cmd)
	}
	return m
}

func notices(m Model) []string {
	var out []string
	for _, n := range m.notifications.Items() {
		out = append(out, n.Text)
	}
	return out
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(context.Background())
	require.ErrorIs(t, err, common.ErrMissingConfig)

	_, err = New(context.Background(), WithClient(newFakeClient()))
	require.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestApp_StartPage(t *testing.T) {
	tests := []struct {
		name     string
		saved    string
		start    Page
		signedIn bool
		want     Page
	}{
		{name: "nothing saved", want: PageLanding},
		{name: "saved board", saved: "price-board", want: PageBoard},
		{name: "unknown saved page", saved: "settings", want: PageLanding},
		{name: "dashboard needs login", saved: "dashboard", want: PageLogin},
		{name: "dashboard when signed in", saved: "dashboard", signedIn: true, want: PageDashboard},
		{name: "login page skipped when signed in", saved: "login", signedIn: true, want: PageDashboard},
		{name: "explicit start page wins", saved: "dashboard", start: PageSignup, want: PageSignup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps(t, tt.signedIn)
			if tt.saved != "" {
				require.NoError(t, deps.session.SaveLastPage(context.Background(), tt.saved))
			}

			var opts []Option
			if tt.start != "" {
				opts = append(opts, WithStartPage(tt.start))
			}
			m := deps.start(t, opts...)
			assert.Equal(t, tt.want, m.Page())
		})
	}
}

func TestApp_BoardLoadsAndFilters(t *testing.T) {
	deps := newTestDeps(t, false)
	m := deps.start(t, WithStartPage(PageBoard))

	require.True(t, m.state.BoardLoaded())
	assert.Equal(t, 3, m.boardTable.Len())
	assert.Contains(t, tuitesting.StripANSI(m.View()), "Showing 3 of 3 entries")

	msgs := []tea.Msg{tuitesting.KeyPress("/")}
	msgs = append(msgs, tuitesting.Type("car")...)
	m = press(t, m, msgs...)
	assert.True(t, m.filters.Active())
	assert.Equal(t, 1, m.boardTable.Len())
	assert.Contains(t, tuitesting.StripANSI(m.View()), "Showing 1 of 3 entries")

	// q is typed into the search box rather than quitting.
	m = press(t, m, tuitesting.KeyPress("q"))
	assert.False(t, m.quitting)
	assert.Equal(t, 0, m.boardTable.Len())

	m = press(t, m, tuitesting.KeyEsc())
	assert.False(t, m.filters.Active())

	m = press(t, m, tuitesting.KeyPress("c"))
	assert.Equal(t, 3, m.boardTable.Len())
}

func TestApp_StaleBoardLoadIsDropped(t *testing.T) {
	deps := newTestDeps(t, false)
	m := deps.start(t, WithStartPage(PageBoard))

	old := m.state.Begin(board.LoadBoard)
	current := m.state.Begin(board.LoadBoard)

	next, _ := m.Update(boardLoadedMsg{ticket: old, entries: nil})
	m = next.(Model)
	assert.Equal(t, 3, m.boardTable.Len(), "superseded load must not clear the board")

	next, _ = m.Update(boardLoadedMsg{ticket: current, entries: deps.client.entries[:1]})
	m = next.(Model)
	assert.Equal(t, 1, m.boardTable.Len())
}

func TestApp_Login(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantPage Page
		notice   string
	}{
		{name: "success", password: testPassword, wantPage: PageDashboard, notice: "Welcome back, Ana!"},
		{name: "wrong password", password: "nope!!", wantPage: PageLogin, notice: api.MsgLoginFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps(t, false)
			m := deps.start(t, WithStartPage(PageLogin))

			msgs := tuitesting.Type("ana@example.com")
			msgs = append(msgs, tuitesting.KeyTab())
			msgs = append(msgs, tuitesting.Type(tt.password)...)
			msgs = append(msgs, tuitesting.KeyEnter())
			m = press(t, m, msgs...)

			assert.Equal(t, tt.wantPage, m.Page())
			assert.Contains(t, notices(m), tt.notice)
		})
	}
}

func TestApp_LoginLoadsDashboard(t *testing.T) {
	deps := newTestDeps(t, false)
	m := deps.start(t, WithStartPage(PageLogin))

	msgs := tuitesting.Type("ana@example.com")
	msgs = append(msgs, tuitesting.KeyTab())
	msgs = append(msgs, tuitesting.Type(testPassword)...)
	msgs = append(msgs, tuitesting.KeyEnter())
	m = press(t, m, msgs...)

	require.True(t, m.state.DashboardLoaded())
	assert.Equal(t, 2, m.dashTable.Len())
	assert.Equal(t, 2, m.state.TotalCount())

	view := tuitesting.StripANSI(m.View())
	assert.Contains(t, view, "2 entries • Last updated: 2024-05-03 09:00:00")
	assert.Contains(t, view, "Signed in as Ana")

	saved, ok, err := deps.store.Get(context.Background(), session.KeyLastPage)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, string(PageDashboard), saved)
}

func TestApp_Signup(t *testing.T) {
	t.Run("new account", func(t *testing.T) {
		deps := newTestDeps(t, false)
		m := deps.start(t, WithStartPage(PageSignup))

		msgs := []tea.Msg{}
		for i, v := range []string{"Cara", "cara@example.com", "secret1", "secret1"} {
			if i > 0 {
				msgs = append(msgs, tuitesting.KeyTab())
			}
			msgs = append(msgs, tuitesting.Type(v)...)
		}
		msgs = append(msgs, tuitesting.KeyEnter())
		m = press(t, m, msgs...)

		assert.Equal(t, PageDashboard, m.Page())
		assert.Contains(t, notices(m), MsgAccountCreated)
		assert.True(t, deps.session.IsAuthenticated())
	})

	t.Run("existing account redirects to login", func(t *testing.T) {
		deps := newTestDeps(t, false)
		m := deps.start(t, WithStartPage(PageSignup))

		msgs := []tea.Msg{}
		for i, v := range []string{"Ana", "ana@example.com", "secret1", "secret1"} {
			if i > 0 {
				msgs = append(msgs, tuitesting.KeyTab())
			}
			msgs = append(msgs, tuitesting.Type(v)...)
		}
		msgs = append(msgs, tuitesting.KeyEnter())
		m = press(t, m, msgs...)

		assert.Contains(t, notices(m), MsgAccountExists)
		assert.Equal(t, PageLogin, m.Page())
		assert.False(t, deps.session.IsAuthenticated())
	})
}

func TestApp_MutationsRequireLogin(t *testing.T) {
	deps := newTestDeps(t, false)
	m := deps.start(t, WithStartPage(PageBoard))

	m = press(t, m, tuitesting.KeyPress("a"))

	assert.Equal(t, PageLogin, m.Page())
	assert.Equal(t, ModalNone, m.ActiveModal())
	assert.Contains(t, notices(m), MsgLoginToAdd)
}

func addEntryKeys(vegetable, price string) []tea.Msg {
	msgs := []tea.Msg{tuitesting.KeyPress("a")}
	msgs = append(msgs, tuitesting.Type(vegetable)...)
	msgs = append(msgs, tuitesting.KeyEnter(), tuitesting.KeyTab())
	msgs = append(msgs, tuitesting.Type(price)...)
	return append(msgs, tuitesting.KeyCtrl("s"))
}

func TestApp_AddEntry(t *testing.T) {
	deps := newTestDeps(t, true)
	m := deps.start(t, WithStartPage(PageDashboard))
	readsBefore := deps.client.readOwn

	m = press(t, m, addEntryKeys("Malunggay", "30")...)

	require.Len(t, deps.client.saved, 1)
	draft := deps.client.saved[0]
	assert.Equal(t, "Malunggay", draft.Vegetable)
	assert.InDelta(t, 30.0, draft.Price, 0.0001)
	assert.Equal(t, model.DefaultUnit, draft.Unit)
	assert.Equal(t, model.StatusGood, draft.Status)

	assert.Equal(t, ModalNone, m.ActiveModal())
	assert.Contains(t, notices(m), "Price entry created successfully")
	// one read for the duplicate check and one for the reload
	assert.Equal(t, readsBefore+2, deps.client.readOwn)
}

func TestApp_DuplicateEntryIsRejected(t *testing.T) {
	deps := newTestDeps(t, true)
	m := deps.start(t, WithStartPage(PageDashboard))

	m = press(t, m, addEntryKeys(" carrot ", "50")...)

	assert.Empty(t, deps.client.saved)
	assert.Equal(t, ModalEntry, m.ActiveModal())
	assert.False(t, m.entryForm.Saving())
	assert.Equal(t,
		"carrot with Good Quality already exists. Use a different status or edit the existing entry.",
		m.entryForm.Errors()[board.FieldVegetable])
}

func TestApp_DuplicateCheckFailureStillSaves(t *testing.T) {
	deps := newTestDeps(t, true)
	m := deps.start(t, WithStartPage(PageDashboard))
	deps.client.readOwnErr = errors.New("boom")

	m = press(t, m, addEntryKeys("Carrot", "50")...)

	assert.Len(t, deps.client.saved, 1)
	assert.Equal(t, ModalNone, m.ActiveModal())
}

func TestApp_SaveFailureKeepsForm(t *testing.T) {
	deps := newTestDeps(t, true)
	m := deps.start(t, WithStartPage(PageDashboard))
	deps.client.saveErr = &api.Error{Endpoint: "create.php", Message: api.MsgSaveFailed}

	m = press(t, m, addEntryKeys("Okra", "25")...)

	assert.Equal(t, ModalEntry, m.ActiveModal())
	assert.False(t, m.entryForm.Saving())
	assert.Contains(t, notices(m), api.MsgSaveFailed)
}

func TestApp_EditEntry(t *testing.T) {
	deps := newTestDeps(t, true)
	m := deps.start(t, WithStartPage(PageDashboard))

	// First row is Carrot; change only the price.
	msgs := []tea.Msg{tuitesting.KeyPress("e")}
	for i := 0; i < 4; i++ {
		msgs = append(msgs, tuitesting.KeyBackspace())
	}
	msgs = append(msgs, tuitesting.Type("48")...)
	msgs = append(msgs, tuitesting.KeyEnter())
	m = press(t, m, msgs...)

	require.Len(t, deps.client.saved, 1)
	assert.Equal(t, 1, deps.client.saved[0].ID)
	assert.Equal(t, "Carrot", deps.client.saved[0].Vegetable)
	assert.InDelta(t, 48.0, deps.client.saved[0].Price, 0.0001)
	assert.Contains(t, notices(m), "Price entry updated successfully")
}

func TestApp_StaleSaveResultIsDropped(t *testing.T) {
	deps := newTestDeps(t, true)
	m := deps.start(t, WithStartPage(PageDashboard))

	keys := addEntryKeys("Okra", "25")
	m = press(t, m, keys[:len(keys)-1]...)

	// Submit, but hold the save request while the user closes the form.
	next, cmd := m.Update(tuitesting.KeyCtrl("s"))
	m = next.(Model)
	submitted, ok := tuitesting.FindMsg[components.EntrySubmittedMsg](tuitesting.Collect(cmd))
	require.True(t, ok)
	next, saveCmd := m.Update(submitted)
	m = next.(Model)

	m = press(t, m, tuitesting.KeyEsc())
	require.Equal(t, ModalNone, m.ActiveModal())

	m, _ = pump(t, m, saveCmd)
	assert.Equal(t, ModalNone, m.ActiveModal())
	assert.Empty(t, notices(m))
}

func TestApp_BulkUpdate(t *testing.T) {
	tests := []struct {
		name      string
		result    api.BulkResult
		err       error
		wantModal Modal
		notice    string
	}{
		{
			name:      "success",
			result:    api.BulkResult{Message: "Prices updated successfully", UpdatedCount: 1},
			wantModal: ModalNone,
			notice:    "Prices updated successfully",
		},
		{
			name:      "partial",
			result:    api.BulkResult{UpdatedCount: 1, Errors: []string{"Onion: not found", "Okra: locked"}},
			wantModal: ModalNone,
			notice:    "1 item(s) updated. Some updates failed: Onion: not found, Okra: locked",
		},
		{
			name:      "failure",
			err:       &api.Error{Endpoint: "bulk_update.php", Message: "Onion: not found"},
			wantModal: ModalBulk,
			notice:    "Onion: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps(t, true)
			deps.client.bulkResult = tt.result
			deps.client.bulkErr = tt.err
			m := deps.start(t, WithStartPage(PageDashboard))

			msgs := []tea.Msg{tuitesting.KeyPress("u")}
			for i := 0; i < 5; i++ {
				msgs = append(msgs, tuitesting.KeyBackspace())
			}
			msgs = append(msgs, tuitesting.Type("50")...)
			msgs = append(msgs, tuitesting.KeyEnter())
			m = press(t, m, msgs...)

			require.Len(t, deps.client.bulkCalls, 1)
			assert.Equal(t, []model.PriceUpdate{{ID: 1, Price: 50, Status: model.StatusGood}}, deps.client.bulkCalls[0])
			assert.Equal(t, tt.wantModal, m.ActiveModal())
			assert.Contains(t, notices(m), tt.notice)
		})
	}
}

func TestApp_BulkUpdateWithoutChanges(t *testing.T) {
	deps := newTestDeps(t, true)
	m := deps.start(t, WithStartPage(PageDashboard))

	m = press(t, m, tuitesting.KeyPress("u"), tuitesting.KeyEnter())

	assert.Empty(t, deps.client.bulkCalls)
	assert.Equal(t, ModalBulk, m.ActiveModal())
	assert.Equal(t, components.MsgNoChanges, m.bulk.Notice())
}

func TestApp_DeleteEntry(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		deps := newTestDeps(t, true)
		m := deps.start(t, WithStartPage(PageDashboard))

		m = press(t, m, tuitesting.KeyPress("x"))
		require.Equal(t, ModalDelete, m.ActiveModal())
		assert.Contains(t, tuitesting.StripANSI(m.View()), components.DefaultDeleteMessage)

		m = press(t, m, tuitesting.KeyPress("y"))

		assert.Equal(t, []int{1}, deps.client.deleted)
		assert.Equal(t, ModalNone, m.ActiveModal())
		assert.Equal(t, 1, m.dashTable.Len())
		assert.Equal(t, 2, m.boardTable.Len())
		assert.Contains(t, notices(m), "Item deleted successfully")
	})

	t.Run("cancelled", func(t *testing.T) {
		deps := newTestDeps(t, true)
		m := deps.start(t, WithStartPage(PageDashboard))

		m = press(t, m, tuitesting.KeyPress("x"), tuitesting.KeyPress("n"))

		assert.Empty(t, deps.client.deleted)
		assert.Equal(t, ModalNone, m.ActiveModal())
		assert.Equal(t, 2, m.dashTable.Len())
	})

	t.Run("server error", func(t *testing.T) {
		deps := newTestDeps(t, true)
		deps.client.deleteErr = &api.Error{Endpoint: "delete.php", Message: api.MsgDeleteFailed}
		m := deps.start(t, WithStartPage(PageDashboard))

		m = press(t, m, tuitesting.KeyPress("x"), tuitesting.KeyPress("y"))

		assert.Equal(t, 2, m.dashTable.Len())
		assert.Contains(t, notices(m), api.MsgDeleteFailed)
	})
}

func TestApp_Logout(t *testing.T) {
	deps := newTestDeps(t, true)
	m := deps.start(t, WithStartPage(PageDashboard))
	require.Equal(t, 2, m.state.TotalCount())

	m = press(t, m, tuitesting.KeyPress("o"))

	assert.Equal(t, PageBoard, m.Page())
	assert.False(t, deps.session.IsAuthenticated())
	assert.Contains(t, notices(m), MsgLoggedOut)
	assert.Zero(t, m.dashTable.Len())
	assert.Equal(t, 3, m.state.TotalCount())

	_, ok, err := deps.store.Get(context.Background(), session.KeyCurrentUser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestApp_RefreshRightAfterLogoutSkipsDashboard(t *testing.T) {
	deps := newTestDeps(t, true)
	m := deps.start(t, WithStartPage(PageDashboard))
	readsBefore := deps.client.readOwn

	// Refresh before the logout command has removed the saved record.
	next, logoutCmd := m.Update(tuitesting.KeyPress("o"))
	m = next.(Model)
	assert.False(t, deps.session.IsAuthenticated())

	next, refreshCmd := m.Update(tuitesting.KeyPress("r"))
	m, _ = pump(t, next.(Model), refreshCmd, logoutCmd)

	assert.Equal(t, readsBefore, deps.client.readOwn)
	assert.Empty(t, m.state.OwnEntries())
	assert.Zero(t, m.dashTable.Len())
	assert.Equal(t, 3, m.state.TotalCount())
	assert.Equal(t, PageBoard, m.Page())
}

func TestApp_NavigationKeys(t *testing.T) {
	deps := newTestDeps(t, false)
	m := deps.start(t)
	require.Equal(t, PageLanding, m.Page())

	m = press(t, m, tuitesting.KeyEnter())
	assert.Equal(t, PageBoard, m.Page())

	m = press(t, m, tuitesting.KeyPress("2"))
	assert.Equal(t, PageLogin, m.Page(), "dashboard needs a session")

	m = press(t, m, tuitesting.KeyCtrl("n"))
	assert.Equal(t, PageSignup, m.Page())

	m = press(t, m, tuitesting.KeyEsc())
	assert.Equal(t, PageBoard, m.Page())

	m = press(t, m, tuitesting.KeyPress("?"))
	assert.True(t, m.help.ShowAll)

	next, cmd := m.Update(tuitesting.KeyPress("q"))
	assert.True(t, next.(Model).quitting)
	_, ok := tuitesting.FindMsg[tea.QuitMsg](tuitesting.Collect(cmd))
	assert.True(t, ok)
}

func TestParsePage(t *testing.T) {
	for _, p := range []Page{PageLanding, PageBoard, PageDashboard, PageLogin, PageSignup} {
		got, ok := ParsePage(string(p))
		assert.True(t, ok)
		assert.Equal(t, p, got)
	}

	_, ok := ParsePage("nowhere")
	assert.False(t, ok)
}
