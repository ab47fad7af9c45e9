package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"enigma/internal/admin"
	"enigma/internal/hintroute"
	"enigma/internal/identity"
	"enigma/internal/platform/config"
	"enigma/internal/platform/health"
	"enigma/internal/platform/logger"
	puzzlehandler "enigma/internal/puzzle/handler"
	puzzlemetrics "enigma/internal/puzzle/metrics"
	puzzleservice "enigma/internal/puzzle/service"
	"enigma/internal/puzzle/store"
	ratelimitadmin "enigma/internal/ratelimit/admin"
	ratelimithandler "enigma/internal/ratelimit/handler"
	ratelimitmetrics "enigma/internal/ratelimit/metrics"
	"enigma/internal/ratelimit/service/lockout"
	"enigma/internal/ratelimit/workers/lockgauge"
	"enigma/internal/seeder"
	httptransport "enigma/internal/transport/http"
	request "enigma/pkg/platform/middleware/request"
	"enigma/pkg/platform/tracing"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.FromEnv(ctx)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	log.Info("initializing enigma",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"storage_backend", cfg.Storage.Backend,
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	tracer := tracing.NewOTel("enigma")

	b, err := openBackend(ctx, cfg, reg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.close(); err != nil {
			log.Error("failed to close storage", "error", err)
		}
	}()

	keys := store.NewKeys(cfg.Storage.KeyPrefix)
	users := store.NewUserStore(b.store, keys)
	configs := store.NewConfigStore(b.store, keys)
	questions := store.NewQuestionStore(b.store, keys)
	routes := store.NewHintRouteStore(b.store, keys)

	seedOpts := []seeder.Option{seeder.WithLogger(log)}
	if cfg.Seed.File != "" {
		seedOpts = append(seedOpts, seeder.WithFile(cfg.Seed.File))
	}
	seed := seeder.New(configs, questions, users, seedOpts...)
	if _, err := seed.SeedIfEmpty(ctx); err != nil {
		return err
	}

	resolver, err := identity.NewResolver(configs, users)
	if err != nil {
		return err
	}
	rateLimitMetrics := ratelimitmetrics.New(reg)
	engine, err := lockout.New(users, configs,
		lockout.WithLogger(log),
		lockout.WithMetrics(rateLimitMetrics),
		lockout.WithTracer(tracer),
	)
	if err != nil {
		return err
	}
	puzzleSvc, err := puzzleservice.New(resolver, engine, questions, configs,
		puzzleservice.WithLogger(log),
		puzzleservice.WithMetrics(puzzlemetrics.New(reg)),
		puzzleservice.WithTracer(tracer),
	)
	if err != nil {
		return err
	}
	adminSvc, err := admin.NewService(users, questions, configs,
		admin.WithLogger(log),
		admin.WithTracer(tracer),
	)
	if err != nil {
		return err
	}
	overrideSvc, err := ratelimitadmin.New(resolver, engine, users, ratelimitadmin.WithLogger(log))
	if err != nil {
		return err
	}
	routeSvc, err := hintroute.New(routes, hintroute.WithLogger(log))
	if err != nil {
		return err
	}

	healthHandler := health.New(cfg.Environment,
		health.WithBackend(cfg.Storage.Backend),
		health.WithCheckTimeout(cfg.Storage.Timeout),
		health.WithLogger(log),
	)
	healthHandler.RegisterCheck("storage", b.ready)

	router := httptransport.NewRouter(httptransport.Handlers{
		Puzzle:    puzzlehandler.New(puzzleSvc, log),
		Admin:     admin.New(adminSvc, log),
		RateLimit: ratelimithandler.New(overrideSvc, log),
		HintRoute: hintroute.NewHandler(routeSvc, log),
		Health:    healthHandler,
	}, httptransport.Config{
		Logger:         log,
		Resolver:       resolver,
		Metrics:        request.NewMetrics(reg),
		Gatherer:       reg,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	gauge := lockgauge.New(users,
		lockgauge.WithLogger(log),
		lockgauge.WithInterval(cfg.LockGaugeInterval),
		lockgauge.WithMetrics(rateLimitMetrics),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		if err := gauge.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	if b.poll != nil {
		g.Go(func() error { return b.poll(gctx) })
	}
	if cfg.Seed.Watch && cfg.Seed.File != "" {
		g.Go(func() error { return seed.Watch(gctx, seeder.DefaultDebounce) })
	}

	return g.Wait()
}
