// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default locations, expanded with ExpandPath before use.
const (
	DefaultDatabasePath = "$HOME/.local/share/vegboard/session.db"
	DefaultLogPath      = "$HOME/.local/share/vegboard/vegboard.log"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	// First expand tilde if present
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Then expand environment variables
	return os.ExpandEnv(path)
}

// ResolvePath returns the expanded configured path, or the expanded fallback when unset.
func ResolvePath(configured, fallback string) string {
	if strings.TrimSpace(configured) == "" {
		configured = fallback
	}
	return ExpandPath(configured)
}
