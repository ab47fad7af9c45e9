//go:build integration

// Package containers starts throwaway backends for integration tests. A
// container is started at most once per test binary and shared by suites.
package containers

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"enigma/internal/platform/database"
)

// Postgres is a migrated database ready for kv_store tests.
type Postgres struct {
	Container testcontainers.Container
	Pool      *database.Pool
}

var (
	pgOnce sync.Once
	pg     *Postgres
	pgErr  error
)

// SharedPostgres returns the binary-wide Postgres, starting it on first use.
// Ryuk removes the container when the process exits.
func SharedPostgres(t *testing.T) *Postgres {
	t.Helper()
	pgOnce.Do(func() {
		pg, pgErr = startPostgres(context.Background())
	})
	if pgErr != nil {
		t.Fatalf("postgres container: %v", pgErr)
	}
	return pg
}

// DB is the pool's handle, for stores built directly on database/sql.
func (p *Postgres) DB() *sql.DB {
	return p.Pool.DB()
}

// Reset empties kv_store between tests.
func (p *Postgres) Reset(ctx context.Context) error {
	_, err := p.Pool.DB().ExecContext(ctx, "TRUNCATE TABLE kv_store")
	return err
}

func startPostgres(ctx context.Context) (*Postgres, error) {
	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("enigma_test"),
		postgres.WithUsername("enigma"),
		postgres.WithPassword("enigma"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	pool, err := database.New(ctx, database.Config{URL: dsn, MaxOpenConns: 5, MaxIdleConns: 2})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err := pool.Migrate(ctx); err != nil {
		_ = pool.Close()
		_ = container.Terminate(ctx)
		return nil, err
	}
	return &Postgres{Container: container, Pool: pool}, nil
}
