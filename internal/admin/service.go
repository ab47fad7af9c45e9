// Package admin serves the administrator console: participants, puzzle
// content, game configuration and the progress dashboard. Callers are
// authorized by the identity middleware before any method here runs.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"enigma/internal/puzzle/models"
	"enigma/internal/ratelimit/observability"
	dErrors "enigma/pkg/domain-errors"
	"enigma/pkg/platform/middleware/requesttime"
	"enigma/pkg/platform/sentinel"
	"enigma/pkg/platform/tracing"
)

// UserIDPrefix marks participant access UUIDs.
const UserIDPrefix = "user-"

type Service struct {
	users     UserStore
	questions QuestionStore
	config    ConfigStore
	logger    *slog.Logger
	tracer    tracing.Tracer
	newID     func() string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(t tracing.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithIDGenerator replaces the random suffix of new participant UUIDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

func NewService(users UserStore, questions QuestionStore, config ConfigStore, opts ...Option) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if questions == nil {
		return nil, fmt.Errorf("question store is required")
	}
	if config == nil {
		return nil, fmt.Errorf("config store is required")
	}
	svc := &Service{
		users:     users,
		questions: questions,
		config:    config,
		tracer:    tracing.NewNoop(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// ListUsers returns full participant records, lockout state included.
func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	return users, nil
}

func (s *Service) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	user := models.NewUser(UserIDPrefix+s.newID(), req.Name, requesttime.Now(ctx))
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			return nil, dErrors.New(dErrors.CodeConflict, "User already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	observability.LogAudit(ctx, s.logger, "user_created",
		"user_uuid", user.UUID,
		"name", user.Name,
	)
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, userUUID string) error {
	if userUUID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "userUuid is required")
	}
	if err := s.users.Delete(ctx, userUUID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user")
	}
	observability.LogAudit(ctx, s.logger, "user_deleted", "user_uuid", userUUID)
	return nil
}

// ListQuestions returns the full question set, answers and passwords included.
func (s *Service) ListQuestions(ctx context.Context) (models.QuestionSet, error) {
	qs, err := s.questions.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load questions")
	}
	return qs, nil
}

// ReplaceQuestions swaps the whole set. Participant progress is kept, so a
// participant whose current order no longer exists sees the game as complete.
func (s *Service) ReplaceQuestions(ctx context.Context, req models.ReplaceQuestionsRequest) (qs models.QuestionSet, err error) {
	ctx, span := s.tracer.Start(ctx, "admin.replace_questions", tracing.Int("count", len(req)))
	defer func() { span.End(err) }()

	qs = models.QuestionSet(req).Sorted()
	if err := s.questions.Replace(ctx, qs); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save questions")
	}
	observability.LogAudit(ctx, s.logger, "questions_replaced", "count", len(qs))
	return qs, nil
}

func (s *Service) GetConfig(ctx context.Context) (*models.AdminConfig, error) {
	cfg, err := s.config.Get(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "Configuration not found")
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load configuration")
	}
	return cfg, nil
}

// UpdateConfig merges req into the stored configuration. Rotating the admin
// UUID takes effect on the next request.
func (s *Service) UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (cfg *models.AdminConfig, err error) {
	ctx, span := s.tracer.Start(ctx, "admin.update_config")
	defer func() { span.End(err) }()

	current, err := s.config.Get(ctx)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		current = &models.AdminConfig{}
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load configuration")
	}

	next := req.Apply(*current).Normalized()
	if next.AdminUUID != current.AdminUUID {
		if err := s.ensureUnclaimed(ctx, next.AdminUUID, "admin"); err != nil {
			return nil, err
		}
	}
	if next.DashboardUUID != current.DashboardUUID {
		if err := s.ensureUnclaimed(ctx, next.DashboardUUID, "dashboard"); err != nil {
			return nil, err
		}
	}
	if err := s.config.Save(ctx, &next); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save configuration")
	}
	observability.LogAudit(ctx, s.logger, "config_updated",
		"admin_uuid_changed", next.AdminUUID != current.AdminUUID,
		"dashboard_uuid_changed", next.DashboardUUID != current.DashboardUUID,
		"game_state", next.GameState,
		"answer_max_failures", next.RateLimitConfig.Answer.MaxFailures,
		"hint_max_failures", next.RateLimitConfig.HintPassword.MaxFailures,
	)
	return &next, nil
}

// ensureUnclaimed rejects a role UUID that already identifies a participant;
// the resolver checks roles first, so the participant would be locked out.
func (s *Service) ensureUnclaimed(ctx context.Context, id, role string) error {
	if id == "" {
		return nil
	}
	_, err := s.users.Get(ctx, id)
	switch {
	case err == nil:
		return dErrors.New(dErrors.CodeConflict, fmt.Sprintf("%s UUID belongs to a participant", role))
	case errors.Is(err, sentinel.ErrNotFound):
		return nil
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check participant UUIDs")
	}
}
