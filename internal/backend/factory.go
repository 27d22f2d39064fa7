// Package backend selects and constructs the storage implementation the
// binaries run against.
package backend

import (
	"fmt"
	"log/slog"

	"rentroll/internal/config"
	"rentroll/internal/storage"
	"rentroll/internal/store"
	"rentroll/internal/store/memory"
)

// Backend bundles the storage ports a backend must provide.
type Backend interface {
	store.TenantStore
	store.PaymentStore
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Type represents the kind of backend.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Result contains the backend instance and optional cleanup function.
type Result struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Open constructs the backend named by the application config.
func Open(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Backend: repo, Cleanup: repo.Close}, nil
	default:
		logger.Info("Initialized memory backend")
		return &Result{Backend: memory.New()}, nil
	}
}
