// Package lockout is the per-user failure and lock engine for the answer
// and hint-password channels.
//
// Every operation is one read-modify-write of the user record under the
// store's per-user lock. Checks persist only when lazy expiry cleared a
// lock. Being locked is a normal result, never an error.
package lockout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	puzzle "enigma/internal/puzzle/models"
	ratelimit "enigma/internal/ratelimit/config"
	"enigma/internal/ratelimit/metrics"
	"enigma/internal/ratelimit/models"
	"enigma/internal/ratelimit/observability"
	dErrors "enigma/pkg/domain-errors"
	"enigma/pkg/platform/middleware/requesttime"
	"enigma/pkg/platform/sentinel"
	"enigma/pkg/platform/tracing"
)

type UserStore interface {
	Update(ctx context.Context, uuid string, fn func(u *puzzle.User) (bool, error)) (*puzzle.User, error)
}

// ConfigStore supplies the admin-editable thresholds. An unseeded store
// falls back to the defaults.
type ConfigStore interface {
	Get(ctx context.Context) (*puzzle.AdminConfig, error)
}

type Service struct {
	users   UserStore
	config  ConfigStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracing.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracing.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(users UserStore, config ConfigStore, opts ...Option) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if config == nil {
		return nil, fmt.Errorf("config store is required")
	}
	svc := &Service{
		users:  users,
		config: config,
		tracer: tracing.NewNoop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func (s *Service) CheckAnswerLimit(ctx context.Context, uuid string) (models.Status, error) {
	return s.check(ctx, uuid, models.ChannelAnswer)
}

func (s *Service) RecordAnswerFailure(ctx context.Context, uuid string) (models.Status, error) {
	return s.recordFailure(ctx, uuid, models.ChannelAnswer)
}

func (s *Service) CheckHintLimit(ctx context.Context, uuid string) (models.Status, error) {
	return s.check(ctx, uuid, models.ChannelHint)
}

func (s *Service) RecordHintFailure(ctx context.Context, uuid string) (models.Status, error) {
	return s.recordFailure(ctx, uuid, models.ChannelHint)
}

// Policy returns the thresholds currently in force.
func (s *Service) Policy(ctx context.Context) (ratelimit.Config, error) {
	cfg, err := s.config.Get(ctx)
	if errors.Is(err, sentinel.ErrNotFound) {
		return ratelimit.DefaultConfig(), nil
	}
	if err != nil {
		return ratelimit.Config{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load rate limit config")
	}
	return cfg.RateLimitConfig.OrDefault(), nil
}

func (s *Service) check(ctx context.Context, uuid string, ch models.Channel) (status models.Status, err error) {
	ctx, span := s.tracer.Start(ctx, "ratelimit.check", tracing.String("channel", string(ch)))
	defer func() { span.End(err) }()

	now := requesttime.Now(ctx)
	var expired bool
	_, err = s.users.Update(ctx, uuid, func(u *puzzle.User) (bool, error) {
		status, expired = u.RateLimit.Evaluate(ch, now)
		return expired, nil
	})
	if err != nil {
		return models.Status{}, s.translate(err, "failed to check rate limit")
	}

	if expired {
		s.incResets(metrics.ReasonExpiry)
		observability.LogAudit(ctx, s.logger, "lock_expired",
			"user_uuid", uuid,
			"channel", ch,
		)
	}
	if status.Locked && s.metrics != nil {
		s.metrics.IncrementRejected(ch)
	}
	span.SetAttributes(tracing.Bool("locked", status.Locked))
	return status, nil
}

// recordFailure counts one failed attempt. Callers must not retry it: a
// retry counts twice.
func (s *Service) recordFailure(ctx context.Context, uuid string, ch models.Channel) (status models.Status, err error) {
	ctx, span := s.tracer.Start(ctx, "ratelimit.record_failure", tracing.String("channel", string(ch)))
	defer func() { span.End(err) }()

	cfg, err := s.Policy(ctx)
	if err != nil {
		return models.Status{}, err
	}
	policy := cfg.For(ch)
	now := requesttime.Now(ctx)

	var wasLocked bool
	var failures int
	_, err = s.users.Update(ctx, uuid, func(u *puzzle.User) (bool, error) {
		wasLocked = u.RateLimit.Peek(ch, now).Locked
		status = u.RateLimit.RecordFailure(ch, policy.MaxFailures, policy.LockDuration(), now)
		failures = u.RateLimit.Failures(ch)
		u.LastActivity = now
		return true, nil
	})
	if err != nil {
		return models.Status{}, s.translate(err, "failed to record failure")
	}

	if s.metrics != nil {
		s.metrics.IncrementFailures(ch)
	}
	if status.Locked && !wasLocked {
		if s.metrics != nil {
			s.metrics.IncrementLockouts(ch)
		}
		observability.LogAudit(ctx, s.logger, string(ch)+"_lockout_triggered",
			"user_uuid", uuid,
			"failures", failures,
			"lock_seconds", status.RemainingSeconds,
		)
	}
	span.SetAttributes(tracing.Int("failures", failures), tracing.Bool("locked", status.Locked))
	return status, nil
}

// ResetOnSuccess opens both channels after a correct answer or hint
// password. Records with nothing to clear are not rewritten.
func (s *Service) ResetOnSuccess(ctx context.Context, uuid string) error {
	_, err := s.CommitSuccess(ctx, uuid, nil)
	return err
}

// CommitSuccess applies a success transition and opens both channels in
// one write, so progress and the cleared locks land together or not at
// all. apply may veto the commit by returning an error; a nil apply only
// clears the channels.
func (s *Service) CommitSuccess(ctx context.Context, uuid string, apply func(u *puzzle.User) error) (user *puzzle.User, err error) {
	ctx, span := s.tracer.Start(ctx, "ratelimit.reset_on_success")
	defer func() { span.End(err) }()

	var cleared bool
	var vetoed error
	user, err = s.users.Update(ctx, uuid, func(u *puzzle.User) (bool, error) {
		changed := false
		if apply != nil {
			if vetoed = apply(u); vetoed != nil {
				return false, vetoed
			}
			changed = true
		}
		cleared = dirty(&u.RateLimit)
		u.RateLimit.ClearAll()
		return changed || cleared, nil
	})
	if vetoed != nil {
		return nil, vetoed
	}
	if err != nil {
		return nil, s.translate(err, "failed to reset rate limit")
	}
	if cleared {
		s.incResets(metrics.ReasonSuccess)
	}
	return user, nil
}

// AdminReset clears only the targeted channels. Progress and the other
// channel are untouched.
func (s *Service) AdminReset(ctx context.Context, uuid string, target models.Target) (user *puzzle.User, err error) {
	ctx, span := s.tracer.Start(ctx, "ratelimit.admin_reset", tracing.String("target", string(target)))
	defer func() { span.End(err) }()

	user, err = s.users.Update(ctx, uuid, func(u *puzzle.User) (bool, error) {
		u.RateLimit.Clear(target)
		return true, nil
	})
	if err != nil {
		return nil, s.translate(err, "failed to reset rate limit")
	}
	s.incResets(metrics.ReasonAdmin)
	observability.LogAudit(ctx, s.logger, "rate_limit_admin_reset",
		"user_uuid", uuid,
		"target", target,
	)
	return user, nil
}

func (s *Service) incResets(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementResets(reason)
	}
}

func (s *Service) translate(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "User not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func dirty(st *models.State) bool {
	return st.AnswerFailures != 0 || st.HintFailures != 0 ||
		st.AnswerLockedUntil != nil || st.HintLockedUntil != nil
}
