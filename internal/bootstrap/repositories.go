package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/LuckyWheel_Go/internal/config"
	"github.com/osse101/LuckyWheel_Go/internal/database"
	"github.com/osse101/LuckyWheel_Go/internal/database/postgres"
	"github.com/osse101/LuckyWheel_Go/internal/handler"
	"github.com/osse101/LuckyWheel_Go/internal/memstore"
	"github.com/osse101/LuckyWheel_Go/internal/repository"
)

// Repositories holds the repository implementations used by the application.
type Repositories struct {
	Wheel repository.Wheel
	Draw  repository.Draw
	Spin  repository.Spin

	// Ready backs the readiness probe
	Ready handler.Pinger

	// DB is nil for the in-memory backend
	DB *pgxpool.Pool
}

// Close releases the database pool, if any.
func (r *Repositories) Close() {
	if r.DB != nil {
		slog.Info(LogMsgClosingDatabase)
		r.DB.Close()
	}
}

// InitializeRepositories connects to PostgreSQL and applies migrations, or
// builds an in-memory store, depending on cfg.StorageBackend.
func InitializeRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		slog.Warn(LogMsgUsingMemoryStore)
		return NewMemoryRepositories(memstore.New()), nil

	case config.StorageBackendPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgConnectDatabase, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgMigrateDatabase, err)
		}
		slog.Info(LogMsgUsingPostgres, "host", cfg.DBHost, "db", cfg.DBName)
		return NewPostgresRepositories(pool), nil

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownBackend, cfg.StorageBackend)
	}
}

// NewPostgresRepositories wires every repository to the same pool.
func NewPostgresRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Wheel: postgres.NewWheelRepository(pool),
		Draw:  postgres.NewDrawRepository(pool),
		Spin:  postgres.NewSpinRepository(pool),
		Ready: pool,
		DB:    pool,
	}
}

// NewMemoryRepositories wires every repository to one in-memory store.
func NewMemoryRepositories(store *memstore.Store) *Repositories {
	return &Repositories{
		Wheel: store,
		Draw:  store,
		Spin:  store,
		Ready: store,
	}
}
