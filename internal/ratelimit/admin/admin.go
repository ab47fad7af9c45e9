package admin

import (
	"context"
	"fmt"
	"log/slog"

	puzzle "enigma/internal/puzzle/models"
	"enigma/internal/ratelimit/models"
	"enigma/internal/ratelimit/observability"
	dErrors "enigma/pkg/domain-errors"
	"enigma/pkg/platform/middleware/requesttime"
)

type Service struct {
	resolver Resolver
	engine   Engine
	users    UserLister
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(resolver Resolver, engine Engine, users UserLister, opts ...Option) (*Service, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("lockout engine is required")
	}
	if users == nil {
		return nil, fmt.Errorf("user lister is required")
	}

	svc := &Service{
		resolver: resolver,
		engine:   engine,
		users:    users,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// ResetRateLimit clears the requested channels of the target user on
// behalf of callerUUID, which must resolve to the admin role.
func (s *Service) ResetRateLimit(ctx context.Context, callerUUID string, req *models.ResetRequest) (*models.ResetResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireAdmin(ctx, callerUUID); err != nil {
		return nil, err
	}
	target, err := models.ParseTarget(req.Type)
	if err != nil {
		return nil, err
	}

	if _, err := s.engine.AdminReset(ctx, req.UserUUID, target); err != nil {
		return nil, err
	}

	observability.LogAudit(ctx, s.logger, "rate_limit_reset_requested",
		"admin_uuid", callerUUID,
		"user_uuid", req.UserUUID,
		"target", target,
	)
	return &models.ResetResponse{
		UserUUID: req.UserUUID,
		Type:     target,
		Message:  fmt.Sprintf("Rate limit reset (%s) for %s", target, req.UserUUID),
	}, nil
}

// ListLocks reports every user's lock state as of now without applying
// lazy expiry. Listing is not a check and must not reset anything.
func (s *Service) ListLocks(ctx context.Context, callerUUID string) ([]models.UserLockView, error) {
	if err := s.requireAdmin(ctx, callerUUID); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}

	now := requesttime.Now(ctx)
	views := make([]models.UserLockView, 0, len(users))
	for _, u := range users {
		views = append(views, lockView(u, now))
	}
	return views, nil
}

func (s *Service) requireAdmin(ctx context.Context, callerUUID string) error {
	if callerUUID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "uuid is required")
	}
	id, err := s.resolver.Resolve(ctx, callerUUID)
	if err != nil {
		return err
	}
	if !id.Valid {
		return dErrors.New(dErrors.CodeUnauthorized, "Invalid user")
	}
	if id.Role != puzzle.RoleAdmin {
		return dErrors.New(dErrors.CodeForbidden, "Admin access required")
	}
	return nil
}
