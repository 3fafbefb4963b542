package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/LofoWalker/upkeep/internal/company/store"
	"github.com/LofoWalker/upkeep/internal/company/store/drivers/postgres"
	"github.com/LofoWalker/upkeep/internal/company/store/storetest"
)

// startPostgres runs a throwaway postgres container and returns its DSN.
// The test is skipped when Docker is not reachable.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "upkeep",
			"POSTGRES_PASSWORD": "upkeep",
			"POSTGRES_DB":       "upkeep",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://upkeep:upkeep@%s:%s/upkeep?sslmode=disable", host, port.Port())
}

// cleanStore returns a factory whose stores share one database and start
// from empty tables.
func cleanStore(dsn string) storetest.Factory {
	return func(t *testing.T) store.Store {
		ctx := context.Background()

		st, err := postgres.NewStore(ctx, dsn)
		require.NoError(t, err)
		t.Cleanup(func() { _ = st.Close() })

		require.NoError(t, st.ApplyMigrations())
		_, err = st.DB().ExecContext(ctx, `TRUNCATE invitations, memberships, companies, customers`)
		require.NoError(t, err)
		return st
	}
}

func TestStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	dsn := startPostgres(t)
	storetest.Run(t, cleanStore(dsn))
	storetest.RunRaces(t, cleanStore(dsn), 5)
}
