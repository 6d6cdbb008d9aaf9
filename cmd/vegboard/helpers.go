package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/veggie-board/internal/api"
	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/Veraticus/veggie-board/internal/config"
	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/Veraticus/veggie-board/internal/session"
	"github.com/Veraticus/veggie-board/internal/storage"
	"github.com/spf13/viper"
)

// initStorage opens the session database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.ResolvePath(viper.GetString("database.path"), config.DefaultDatabasePath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initClient builds the API client from configuration.
func initClient() (*api.Client, error) {
	cfg, err := config.LoadAPIConfig()
	if err != nil {
		return nil, err
	}
	return api.NewClient(*cfg)
}

// app bundles what the session-aware commands need.
type app struct {
	store   *storage.SQLiteStorage
	client  *api.Client
	session *session.Session
}

// openApp connects the API client and restores the saved session.
func openApp(ctx context.Context) (*app, error) {
	client, err := initClient()
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	sess := session.New(store)
	if err := sess.Load(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return &app{store: store, client: client, session: sess}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// requireUser returns the signed-in commissioner with a hint when there is none.
func (a *app) requireUser() (model.Commissioner, error) {
	user, err := a.session.RequireUser()
	if err != nil {
		return model.Commissioner{}, common.NewUserError("You are not logged in. Run 'vegboard login' first.", err)
	}
	return user, nil
}

// parseStatus accepts "good", "low" or the full status label.
func parseStatus(s string) model.Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "good", strings.ToLower(string(model.StatusGood)):
		return model.StatusGood
	case "low", strings.ToLower(string(model.StatusLow)):
		return model.StatusLow
	}
	return model.Status(strings.TrimSpace(s))
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
