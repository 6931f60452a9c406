// Package dbtest opens throwaway sqlite3 stores for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"notes-api/db"
)

// NewStore returns a migrated store backed by a file in t.TempDir. It is
// closed when the test ends.
func NewStore(t *testing.T) *db.Store {
	t.Helper()

	store, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Migrate(context.Background()), "Failed to run migrations")
	return store
}
