// Package hintroute publishes standalone hint pages. Each page has its own
// hint- UUID that admins hand out; visitors see only the content.
package hintroute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"enigma/internal/puzzle/models"
	"enigma/internal/ratelimit/observability"
	dErrors "enigma/pkg/domain-errors"
	"enigma/pkg/platform/middleware/requesttime"
	"enigma/pkg/platform/sentinel"
)

// IDPrefix marks hint route UUIDs.
const IDPrefix = "hint-"

type Store interface {
	List(ctx context.Context) ([]models.HintRoute, error)
	Get(ctx context.Context, uuid string) (*models.HintRoute, error)
	Add(ctx context.Context, route models.HintRoute) error
	Update(ctx context.Context, uuid string, fn func(r *models.HintRoute)) (*models.HintRoute, error)
	Remove(ctx context.Context, uuid string) error
}

type Service struct {
	store  Store
	logger *slog.Logger
	newID  func() string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("hint route store is required")
	}
	svc := &Service{store: store, newID: uuid.NewString}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func (s *Service) List(ctx context.Context) ([]models.HintRoute, error) {
	routes, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list hint routes")
	}
	return routes, nil
}

// Create publishes an active route.
func (s *Service) Create(ctx context.Context, req *models.CreateHintRouteRequest) (*models.HintRoute, error) {
	route := models.HintRoute{
		UUID:      IDPrefix + s.newID(),
		Content:   req.Content,
		CreatedAt: requesttime.Now(ctx),
		ExpiresAt: req.ExpiresAt,
		IsActive:  true,
	}
	if err := s.store.Add(ctx, route); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return nil, dErrors.New(dErrors.CodeConflict, "Hint route already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create hint route")
	}
	observability.LogAudit(ctx, s.logger, "hint_route_created", "route_uuid", route.UUID)
	return &route, nil
}

// Update toggles IsActive and moves the expiry. Fields left nil are kept.
func (s *Service) Update(ctx context.Context, routeUUID string, req *models.UpdateHintRouteRequest) (*models.HintRoute, error) {
	route, err := s.store.Update(ctx, routeUUID, func(r *models.HintRoute) {
		if req.IsActive != nil {
			r.IsActive = *req.IsActive
		}
		if req.ExpiresAt != nil {
			r.ExpiresAt = req.ExpiresAt
		}
	})
	if err != nil {
		return nil, translate(err, "failed to update hint route")
	}
	observability.LogAudit(ctx, s.logger, "hint_route_updated",
		"route_uuid", routeUUID,
		"is_active", route.IsActive,
	)
	return route, nil
}

func (s *Service) Delete(ctx context.Context, routeUUID string) error {
	if routeUUID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "routeUuid is required")
	}
	if err := s.store.Remove(ctx, routeUUID); err != nil {
		return translate(err, "failed to delete hint route")
	}
	observability.LogAudit(ctx, s.logger, "hint_route_deleted", "route_uuid", routeUUID)
	return nil
}

// Resolve serves a public visit. Unknown and inactive routes look the same
// to the visitor; an expired route is gone.
func (s *Service) Resolve(ctx context.Context, routeUUID string) (*models.PublicHintRoute, error) {
	if !strings.HasPrefix(routeUUID, IDPrefix) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Invalid hint route")
	}
	route, err := s.store.Get(ctx, routeUUID)
	if err != nil {
		return nil, translate(err, "failed to load hint route")
	}
	if !route.IsActive {
		return nil, dErrors.New(dErrors.CodeNotFound, "Hint route not found")
	}
	if route.Expired(requesttime.Now(ctx)) {
		return nil, dErrors.New(dErrors.CodeGone, "Hint route has expired")
	}
	return &models.PublicHintRoute{Content: route.Content}, nil
}

func translate(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "Hint route not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
