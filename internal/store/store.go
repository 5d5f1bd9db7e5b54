package store

import (
	"context"
	"fmt"

	"choretracker/internal/models"
)

// Store defines the interface for data persistence operations.
//
// Loads never fail because of malformed stored data: such data is logged and
// treated as absent. Errors are reserved for I/O failures.
type Store interface {
	// Task list operations
	LoadTasks(ctx context.Context) ([]models.Task, error)
	SaveTasks(ctx context.Context, tasks []models.Task) error

	// Preference operations
	LoadPreferences(ctx context.Context) (models.Preferences, error)
	SavePreferences(ctx context.Context, prefs models.Preferences) error

	// Lifecycle
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Open creates the store for the named backend at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendSQLite, "":
		return NewSQLiteStore(path)
	case BackendJSON:
		return NewJSONStore(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
