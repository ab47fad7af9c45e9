// Package httptransport assembles the HTTP surface: middleware, the public
// and role-guarded API groups, health probes and the metrics endpoint.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"enigma/internal/admin"
	"enigma/internal/hintroute"
	"enigma/internal/identity"
	"enigma/internal/platform/health"
	puzzle "enigma/internal/puzzle/handler"
	"enigma/internal/puzzle/models"
	ratelimit "enigma/internal/ratelimit/handler"
	request "enigma/pkg/platform/middleware/request"
	"enigma/pkg/platform/middleware/requesttime"
)

// DefaultMaxBodyBytes bounds JSON request bodies. A full question set is
// the largest legitimate payload.
const DefaultMaxBodyBytes = 1 << 20

// Handlers are the domain handlers mounted by NewRouter.
type Handlers struct {
	Puzzle    *puzzle.Handler
	Admin     *admin.Handler
	RateLimit *ratelimit.Handler
	HintRoute *hintroute.Handler
	Health    *health.Handler
}

// Config carries the cross-cutting pieces the router needs.
type Config struct {
	Logger         *slog.Logger
	Resolver       *identity.Resolver
	Metrics        *request.Metrics
	Gatherer       prometheus.Gatherer
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// NewRouter wires all endpoints with middleware. Participant routes resolve
// identity inside their services; admin and dashboard groups are guarded by
// identity.RequireRole before any handler runs.
func NewRouter(h Handlers, cfg Config) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	r.Use(request.ClientInfo)
	r.Use(request.Logger(cfg.Logger))
	r.Use(request.Instrument(cfg.Metrics))
	r.Use(requesttime.Middleware)

	if h.Health != nil {
		h.Health.Register(r)
	}
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(request.Timeout(cfg.RequestTimeout))
		r.Use(request.ContentTypeJSON)
		r.Use(request.BodyLimit(cfg.MaxBodyBytes))

		h.Puzzle.Register(r)
		h.HintRoute.RegisterPublic(r)

		r.Group(func(r chi.Router) {
			r.Use(identity.RequireRole(cfg.Resolver, cfg.Logger, models.RoleAdmin, models.RoleDashboard))
			h.Admin.RegisterDashboard(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(identity.RequireRole(cfg.Resolver, cfg.Logger, models.RoleAdmin))
			h.Admin.Register(r)
			h.HintRoute.RegisterAdmin(r)
			h.RateLimit.RegisterAdmin(r)
		})
	})

	return r
}
