package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"enigma/internal/platform/config"
	"enigma/internal/platform/database"
	"enigma/internal/platform/health"
	"enigma/internal/platform/redis"
	"enigma/internal/storage/kv"
)

// backend is the selected key/value store and what it needs at runtime.
type backend struct {
	store kv.Store
	ready health.CheckFunc
	// poll runs background upkeep (pool stats, breaker recovery pings)
	// until ctx ends; nil when there is none.
	poll  func(ctx context.Context) error
	close func() error
}

// openBackend is the only place that knows which storage is in use. Every
// backend is wrapped with the store deadline and latency metrics.
func openBackend(ctx context.Context, cfg config.Server, reg prometheus.Registerer, logger *slog.Logger) (*backend, error) {
	b := &backend{close: func() error { return nil }}
	var raw kv.Store
	var pollers []func(ctx context.Context) error

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		raw = kv.NewInMemory()

	case config.BackendFile:
		fs, err := kv.NewFile(cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		raw = fs

	case config.BackendRedis:
		client, err := redis.New(ctx, cfg.Redis, reg)
		if err != nil {
			return nil, err
		}
		raw = kv.NewRedis(client.Client)
		b.close = client.Close
		pollers = append(pollers, func(ctx context.Context) error {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					client.RecordPoolStats()
				}
			}
		})

	case config.BackendPostgres, config.BackendSQLite:
		dbCfg := database.Config{
			Driver:          database.DriverPostgres,
			URL:             cfg.Database.URL,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		}
		if cfg.Storage.Backend == config.BackendSQLite {
			dbCfg.Driver, dbCfg.URL = database.DriverSQLite, cfg.Storage.SQLitePath
		}
		pool, err := database.New(ctx, dbCfg)
		if err != nil {
			return nil, err
		}
		if err := pool.Migrate(ctx); err != nil {
			pool.Close() //nolint:errcheck // best-effort cleanup on init failure
			return nil, fmt.Errorf("migrate: %w", err)
		}
		if dbCfg.Driver == database.DriverSQLite {
			raw = kv.NewSQLite(pool.DB())
		} else {
			raw = kv.NewPostgres(pool.DB())
		}
		b.close = pool.Close

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	opts := []kv.BoundedOption{kv.WithMetrics(kv.NewMetrics(reg))}
	if remote(cfg.Storage.Backend) && cfg.Storage.BreakerFailures > 0 {
		br := kv.NewBreaker(kv.WithFailureThreshold(cfg.Storage.BreakerFailures))
		opts = append(opts, kv.WithBreaker(br, logger))
	}
	bounded := kv.NewBounded(raw, cfg.Storage.Backend, cfg.Storage.Timeout, opts...)
	b.store = bounded
	b.ready = bounded.Ping
	if remote(cfg.Storage.Backend) && cfg.Storage.BreakerFailures > 0 {
		pollers = append(pollers, func(ctx context.Context) error {
			return bounded.Recover(ctx, kv.DefaultRecoveryInterval)
		})
	}
	if len(pollers) > 0 {
		b.poll = func(ctx context.Context) error {
			g, ctx := errgroup.WithContext(ctx)
			for _, p := range pollers {
				g.Go(func() error { return p(ctx) })
			}
			return g.Wait()
		}
	}
	logger.InfoContext(ctx, "storage ready",
		"backend", cfg.Storage.Backend,
		"timeout", cfg.Storage.Timeout,
	)
	return b, nil
}

func remote(backend string) bool {
	return backend == config.BackendRedis || backend == config.BackendPostgres
}
