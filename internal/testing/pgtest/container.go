// Package pgtest starts a throwaway PostgreSQL container with the schema
// applied, for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/osse101/LuckyWheel_Go/internal/database"
)

const image = "postgres:15-alpine"

// NewPool returns a pool on a fresh, migrated database. The test is skipped
// in -short mode or when no Docker daemon is reachable; the container is
// removed when the test ends.
func NewPool(t *testing.T, maxConns int) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in -short mode")
	}
	ctx := context.Background()

	container, err := start(ctx)
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Skipf("integration test skipped, postgres did not start: %v", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.NewPool(ctx, connStr, maxConns, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool))
	return pool
}

// start turns the provider's panic on a missing Docker socket into an error
func start(ctx context.Context) (c *postgres.PostgresContainer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docker unavailable: %v", r)
		}
	}()
	return postgres.Run(ctx, image,
		postgres.WithDatabase("luckywheel_test"),
		postgres.WithUsername("wheel"),
		postgres.WithPassword("wheel"),
		postgres.BasicWaitStrategies(),
	)
}
