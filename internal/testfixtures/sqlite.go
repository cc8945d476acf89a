package testfixtures

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/example/hr-directory/internal/persistence"
	"github.com/example/hr-directory/internal/persistence/memory"
	"github.com/example/hr-directory/internal/persistence/sqlite"
)

var sqliteCounter atomic.Uint64

// SQLiteHarness provides repository access backed by a private in-memory
// SQLite database for integration-style persistence tests.
type SQLiteHarness struct {
	Store *sqlite.Store

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness over a uniquely named shared
// in-memory database that is migrated automatically. Callers may optionally
// invoke Close, but the helper also registers a cleanup callback with tb.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dsn := fmt.Sprintf("file:hrdirectory-test-%d?mode=memory&cache=shared", sqliteCounter.Add(1))
	storage, err := sqlite.Open(dsn, DiscardLogger())
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := storage.Migrate(context.Background()); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Store: storage,
		cleanup: func() {
			_ = storage.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}

// Backend names a repository implementation for tests that run against each one.
type Backend struct {
	Name string
	New  func(tb testing.TB) persistence.Repository
}

// Backends returns every repository implementation.
func Backends() []Backend {
	return []Backend{
		{
			Name: "memory",
			New: func(tb testing.TB) persistence.Repository {
				return memory.New()
			},
		},
		{
			Name: "sqlite",
			New: func(tb testing.TB) persistence.Repository {
				return NewSQLiteHarness(tb).Store
			},
		},
	}
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
