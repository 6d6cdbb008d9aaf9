// Package session keeps track of the signed-in commissioner across runs.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/Veraticus/veggie-board/internal/model"
)

// Keys under which the session is persisted.
const (
	KeyCurrentUser     = "currentUser"
	KeyIsAuthenticated = "isAuthenticated"
	KeyLastPage        = "lastPage"
)

// Store is the persistent key/value backend for a Session.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Authenticator verifies credentials with the remote API.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (model.Commissioner, error)
	Signup(ctx context.Context, name, email, password string) (model.Commissioner, error)
}

// Session owns the current commissioner and the authenticated flag.
// It is safe for concurrent use.
type Session struct {
	store Store
	user  *model.Commissioner
	mu    sync.RWMutex
}

// New returns a signed-out session backed by store.
func New(store Store) *Session {
	return &Session{store: store}
}

// Load restores a previously saved session. A corrupt user record is removed
// and the session starts signed out; only storage failures are returned.
func (s *Session) Load(ctx context.Context) error {
	raw, ok, err := s.store.Get(ctx, KeyCurrentUser)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	flag, flagOK, err := s.store.Get(ctx, KeyIsAuthenticated)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil

	if !ok || !flagOK || flag != "true" {
		return nil
	}

	var user model.Commissioner
	if err := json.Unmarshal([]byte(raw), &user); err != nil || user.ID == 0 {
		slog.Warn("Discarding unreadable saved session", "error", err)
		if delErr := s.store.Delete(ctx, KeyCurrentUser, KeyIsAuthenticated); delErr != nil {
			return fmt.Errorf("failed to clear corrupt session: %w", delErr)
		}
		return nil
	}

	s.user = &user
	return nil
}

// Login verifies credentials and persists the session on success.
func (s *Session) Login(ctx context.Context, auth Authenticator, email, password string) (model.Commissioner, error) {
	user, err := auth.Login(ctx, email, password)
	if err != nil {
		return model.Commissioner{}, err
	}
	if err := s.persist(ctx, user); err != nil {
		return model.Commissioner{}, err
	}
	return user, nil
}

// Signup registers a commissioner and signs them in.
func (s *Session) Signup(ctx context.Context, auth Authenticator, name, email, password string) (model.Commissioner, error) {
	user, err := auth.Signup(ctx, name, email, password)
	if err != nil {
		return model.Commissioner{}, err
	}
	if err := s.persist(ctx, user); err != nil {
		return model.Commissioner{}, err
	}
	return user, nil
}

// Forget signs the commissioner out in memory only. The saved record
// stays until Logout removes it.
func (s *Session) Forget() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// Logout forgets the current commissioner and removes the saved record.
func (s *Session) Logout(ctx context.Context) error {
	s.Forget()

	if err := s.store.Delete(ctx, KeyCurrentUser, KeyIsAuthenticated); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Current returns the signed-in commissioner.
func (s *Session) Current() (model.Commissioner, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return model.Commissioner{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a commissioner is signed in.
func (s *Session) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}

// RequireUser returns the signed-in commissioner or common.ErrNotAuthenticated.
func (s *Session) RequireUser() (model.Commissioner, error) {
	user, ok := s.Current()
	if !ok {
		return model.Commissioner{}, common.ErrNotAuthenticated
	}
	return user, nil
}

// LastPage returns the page that was open when the app last exited, or "".
func (s *Session) LastPage(ctx context.Context) string {
	page, _, err := s.store.Get(ctx, KeyLastPage)
	if err != nil {
		slog.Debug("Could not read last page", "error", err)
		return ""
	}
	return page
}

// SaveLastPage remembers page so the next start can reopen it.
func (s *Session) SaveLastPage(ctx context.Context, page string) error {
	if err := s.store.Set(ctx, KeyLastPage, page); err != nil {
		return fmt.Errorf("failed to save last page: %w", err)
	}
	return nil
}

func (s *Session) persist(ctx context.Context, user model.Commissioner) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.store.Set(ctx, KeyCurrentUser, string(raw)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if err := s.store.Set(ctx, KeyIsAuthenticated, "true"); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}
