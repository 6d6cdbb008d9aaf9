package session

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/Veraticus/veggie-board/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	values map[string]string
	getErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type fakeAuth struct {
	err  error
	user model.Commissioner
}

func (f fakeAuth) Login(_ context.Context, _, _ string) (model.Commissioner, error) {
	return f.user, f.err
}

func (f fakeAuth) Signup(_ context.Context, _, _, _ string) (model.Commissioner, error) {
	return f.user, f.err
}

func TestSession_Load(t *testing.T) {
	tests := []struct {
		stored      map[string]string
		name        string
		wantUser    model.Commissioner
		wantAuth    bool
		wantCleared bool
	}{
		{
			name:   "nothing saved",
			stored: map[string]string{},
		},
		{
			name: "valid session",
			stored: map[string]string{
				KeyCurrentUser:     `{"id":7,"name":"Maria","email":"maria@example.com"}`,
				KeyIsAuthenticated: "true",
			},
			wantAuth: true,
			wantUser: model.Commissioner{ID: 7, Name: "Maria", Email: "maria@example.com"},
		},
		{
			name: "flag not set",
			stored: map[string]string{
				KeyCurrentUser: `{"id":7,"name":"Maria"}`,
			},
		},
		{
			name: "corrupt record",
			stored: map[string]string{
				KeyCurrentUser:     `{"id":`,
				KeyIsAuthenticated: "true",
			},
			wantCleared: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			for k, v := range tt.stored {
				store.values[k] = v
			}

			s := New(store)
			require.NoError(t, s.Load(context.Background()))

			assert.Equal(t, tt.wantAuth, s.IsAuthenticated())
			user, _ := s.Current()
			assert.Equal(t, tt.wantUser, user)

			if tt.wantCleared {
				assert.NotContains(t, store.values, KeyCurrentUser)
				assert.NotContains(t, store.values, KeyIsAuthenticated)
			}
		})
	}
}

func TestSession_LoadStoreError(t *testing.T) {
	store := newMemoryStore()
	store.getErr = errors.New("disk gone")

	s := New(store)
	err := s.Load(context.Background())
	require.Error(t, err)
	assert.False(t, s.IsAuthenticated())
}

func TestSession_LoginLogout(t *testing.T) {
	store := newMemoryStore()
	s := New(store)
	ctx := context.Background()

	_, err := s.RequireUser()
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)

	user := model.Commissioner{ID: 3, Name: "Ana", Email: "ana@example.com"}
	got, err := s.Login(ctx, fakeAuth{user: user}, "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user, got)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "true", store.values[KeyIsAuthenticated])

	// A fresh session over the same store restores the user.
	restored := New(store)
	require.NoError(t, restored.Load(ctx))
	current, err := restored.RequireUser()
	require.NoError(t, err)
	assert.Equal(t, user, current)

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, store.values)
}

func TestSession_ForgetKeepsSavedRecord(t *testing.T) {
	store := newMemoryStore()
	s := New(store)
	ctx := context.Background()

	user := model.Commissioner{ID: 3, Name: "Ana", Email: "ana@example.com"}
	_, err := s.Login(ctx, fakeAuth{user: user}, "ana@example.com", "secret1")
	require.NoError(t, err)

	s.Forget()
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, "true", store.values[KeyIsAuthenticated])

	require.NoError(t, s.Logout(ctx))
	assert.Empty(t, store.values)
}

func TestSession_FailedLoginKeepsState(t *testing.T) {
	store := newMemoryStore()
	s := New(store)

	_, err := s.Login(context.Background(), fakeAuth{err: common.ErrAPIRejected}, "x@y.z", "bad")
	assert.ErrorIs(t, err, common.ErrAPIRejected)
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, store.values)
}

func TestSession_Signup(t *testing.T) {
	s := New(newMemoryStore())
	user := model.Commissioner{ID: 9, Name: "Jose", Email: "jose@example.com"}

	_, err := s.Signup(context.Background(), fakeAuth{user: user}, "Jose", "jose@example.com", "secret1")
	require.NoError(t, err)

	current, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, user, current)
}

func TestSession_WithSQLiteStore(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	t.Cleanup(func() { _ = store.Close() })

	s := New(store)
	user := model.Commissioner{ID: 1, Name: "Maria", Email: "maria@example.com"}
	_, err = s.Login(ctx, fakeAuth{user: user}, user.Email, "secret1")
	require.NoError(t, err)

	require.NoError(t, s.SaveLastPage(ctx, "dashboard"))
	assert.Equal(t, "dashboard", s.LastPage(ctx))

	restored := New(store)
	require.NoError(t, restored.Load(ctx))
	assert.True(t, restored.IsAuthenticated())
}
