// Package store holds filesystem helpers for the on-disk database.
package store

import (
	"os"
	"path/filepath"
)

// DefaultDataDir returns the per-user data directory (~/.lexrain). It falls
// back to the current directory when the home directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lexrain"
	}
	return filepath.Join(home, ".lexrain")
}

// DefaultDBPath returns the default database file location.
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "lexrain.db")
}
