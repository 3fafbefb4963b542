package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LofoWalker/upkeep/internal/company/store"
	"github.com/LofoWalker/upkeep/internal/company/store/drivers/sqlite"
	"github.com/LofoWalker/upkeep/internal/company/store/storetest"
)

func newMemoryStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// newFileStore opens an on-disk database with the production DSN, so the
// pool holds several connections.
func newFileStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "upkeep.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestStore(t *testing.T) {
	storetest.Run(t, newMemoryStore)
}

func TestFileStore(t *testing.T) {
	storetest.Run(t, newFileStore)
}

func TestRaces(t *testing.T) {
	storetest.RunRaces(t, newFileStore, 10)
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newMemoryStore(t)
	require.NoError(t, st.ApplyMigrations())
}

func TestForeignKeysOnEveryConnection(t *testing.T) {
	ctx := context.Background()

	dsns := map[string]string{
		"production dsn": sqlite.FileDSN(filepath.Join(t.TempDir(), "a.db")),
		"bare path":      filepath.Join(t.TempDir(), "b.db"),
	}
	for name, dsn := range dsns {
		t.Run(name, func(t *testing.T) {
			st, err := sqlite.NewStore(dsn)
			require.NoError(t, err)
			t.Cleanup(func() { _ = st.Close() })

			// Hold several connections open at once so the pool cannot
			// hand back the same one.
			for range 3 {
				conn, err := st.DB().Connx(ctx)
				require.NoError(t, err)
				t.Cleanup(func() { _ = conn.Close() })

				var enabled int
				require.NoError(t, conn.GetContext(ctx, &enabled, `PRAGMA foreign_keys`))
				require.Equal(t, 1, enabled)
			}
		})
	}
}
