// Package service implements the participant flows: answering, hints, the
// current question, identity validation and the public game state.
//
// Every gated flow consults the lockout engine before it looks at puzzle
// content, so a locked channel cannot be used as an answer oracle.
package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"

	"enigma/internal/puzzle/metrics"
	"enigma/internal/puzzle/models"
	"enigma/internal/ratelimit/observability"
	dErrors "enigma/pkg/domain-errors"
	"enigma/pkg/platform/middleware/requesttime"
	"enigma/pkg/platform/tracing"
)

type Service struct {
	resolver  Resolver
	limiter   Limiter
	questions QuestionReader
	config    ConfigReader
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    tracing.Tracer
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

func New(resolver Resolver, limiter Limiter, questions QuestionReader, config ConfigReader, opts ...Option) (*Service, error) {
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if limiter == nil {
		return nil, fmt.Errorf("limiter is required")
	}
	if questions == nil {
		return nil, fmt.Errorf("question store is required")
	}
	if config == nil {
		return nil, fmt.Errorf("config store is required")
	}
	svc := &Service{
		resolver:  resolver,
		limiter:   limiter,
		questions: questions,
		config:    config,
		tracer:    tracing.NewNoop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// SubmitAnswer checks the answer lock, then the question, then the answer.
// Wrong answers and locked attempts are normal responses.
func (s *Service) SubmitAnswer(ctx context.Context, req *models.AnswerRequest) (resp *models.AnswerResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "puzzle.submit_answer", tracing.String("question_id", req.QuestionID))
	defer func() { span.End(err) }()

	id, err := s.resolver.Require(ctx, req.UUID, models.RoleUser)
	if err != nil {
		return nil, err
	}
	user := id.User

	questions, err := s.listQuestions(ctx)
	if err != nil {
		return nil, err
	}

	status, err := s.limiter.CheckAnswerLimit(ctx, user.UUID)
	if err != nil {
		return nil, err
	}
	if status.Locked {
		s.countAnswer(metrics.AnswerRateLimited)
		return &models.AnswerResponse{
			Progress:          models.ProgressOf(user, len(questions)),
			RateLimited:       true,
			LockTimeRemaining: status.RemainingSeconds,
		}, nil
	}

	question, err := currentQuestion(questions, user, req.QuestionID)
	if err != nil {
		return nil, err
	}

	if !answersMatch(req.Answer, question.Answer) {
		return s.wrongAnswer(ctx, user, len(questions))
	}
	return s.correctAnswer(ctx, user.UUID, question, questions)
}

func (s *Service) wrongAnswer(ctx context.Context, user *models.User, total int) (*models.AnswerResponse, error) {
	status, err := s.limiter.RecordAnswerFailure(ctx, user.UUID)
	if err != nil {
		return nil, err
	}
	s.countAnswer(metrics.AnswerIncorrect)
	return &models.AnswerResponse{
		Progress:          models.ProgressOf(user, total),
		RateLimited:       status.Locked,
		LockTimeRemaining: status.RemainingSeconds,
	}, nil
}

func (s *Service) correctAnswer(ctx context.Context, uuid string, question *models.Question, questions models.QuestionSet) (*models.AnswerResponse, error) {
	now := requesttime.Now(ctx)
	updated, err := s.limiter.CommitSuccess(ctx, uuid, func(u *models.User) error {
		// a concurrent correct submission may already have advanced the user
		if u.CurrentQuestion != question.Order {
			return dErrors.New(dErrors.CodeForbidden, "Question is not your current question")
		}
		u.Advance(question.ID, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	next := questions.ByOrder(updated.CurrentQuestion)
	resp := &models.AnswerResponse{
		Correct:      true,
		NextQuestion: next.Safe(),
		Completed:    next == nil,
		Progress:     models.ProgressOf(updated, len(questions)),
	}

	s.countAnswer(metrics.AnswerCorrect)
	observability.LogAudit(ctx, s.logger, "question_solved",
		"user_uuid", uuid,
		"question_id", question.ID,
		"current_question", updated.CurrentQuestion,
	)
	if resp.Completed {
		if s.metrics != nil {
			s.metrics.IncrementCompletions()
		}
		observability.LogAudit(ctx, s.logger, "puzzle_completed", "user_uuid", uuid)
	}
	return resp, nil
}

// RequestHints reveals the whole hint set or explains why it is withheld.
// Asking without a password is free; a wrong password is a failure.
func (s *Service) RequestHints(ctx context.Context, req *models.HintRequest) (resp *models.HintResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "puzzle.request_hints", tracing.String("question_id", req.QuestionID))
	defer func() { span.End(err) }()

	id, err := s.resolver.Require(ctx, req.UUID, models.RoleUser)
	if err != nil {
		return nil, err
	}
	user := id.User

	questions, err := s.listQuestions(ctx)
	if err != nil {
		return nil, err
	}
	question, err := currentQuestion(questions, user, req.QuestionID)
	if err != nil {
		return nil, err
	}

	status, err := s.limiter.CheckHintLimit(ctx, user.UUID)
	if err != nil {
		return nil, err
	}
	if status.Locked {
		s.countHint(metrics.HintRateLimited)
		resp = &models.HintResponse{RequiresPassword: question.RequiresPassword()}
		return resp.RateLimitedBy(status), nil
	}

	if !question.HasHints() {
		return nil, dErrors.New(dErrors.CodeNotFound, "No hints available for this question")
	}
	if !question.RequiresPassword() {
		s.countHint(metrics.HintRevealed)
		return &models.HintResponse{Hints: question.Hints}, nil
	}
	if req.Password == "" {
		s.countHint(metrics.HintPasswordRequired)
		return &models.HintResponse{RequiresPassword: true}, nil
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(question.HintPassword)) != 1 {
		status, err := s.limiter.RecordHintFailure(ctx, user.UUID)
		if err != nil {
			return nil, err
		}
		s.countHint(metrics.HintIncorrect)
		resp = &models.HintResponse{RequiresPassword: true, Error: "Incorrect password"}
		return resp.RateLimitedBy(status), nil
	}

	now := requesttime.Now(ctx)
	if _, err := s.limiter.CommitSuccess(ctx, user.UUID, func(u *models.User) error {
		u.LastActivity = now
		return nil
	}); err != nil {
		return nil, err
	}
	s.countHint(metrics.HintRevealed)
	observability.LogAudit(ctx, s.logger, "hint_password_accepted",
		"user_uuid", user.UUID,
		"question_id", question.ID,
	)
	return &models.HintResponse{Hints: question.Hints, RequiresPassword: true}, nil
}

// CurrentQuestion returns the participant's next unsolved question, or
// Completed once every question is solved.
func (s *Service) CurrentQuestion(ctx context.Context, uuid string) (*models.QuestionResponse, error) {
	id, err := s.resolver.Require(ctx, uuid, models.RoleUser)
	if err != nil {
		return nil, err
	}
	questions, err := s.listQuestions(ctx)
	if err != nil {
		return nil, err
	}

	user := id.User
	q := questions.ByOrder(user.CurrentQuestion)
	return &models.QuestionResponse{
		Question:       q.Safe(),
		IsLastQuestion: user.CurrentQuestion >= len(questions),
		Completed:      q == nil,
		Progress:       models.ProgressOf(user, len(questions)),
	}, nil
}

// Validate reports whether uuid grants any role. The user record is never
// returned.
func (s *Service) Validate(ctx context.Context, uuid string) (*models.ValidateResponse, error) {
	id, err := s.resolver.Resolve(ctx, uuid)
	if err != nil {
		return nil, err
	}
	return &models.ValidateResponse{Valid: id.Valid, Role: id.Role}, nil
}

// GameState is public and falls back to coming-soon on any failure.
func (s *Service) GameState(ctx context.Context) *models.GameStateResponse {
	cfg, err := s.config.Get(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "game state unavailable, defaulting", "error", err)
		}
		return &models.GameStateResponse{GameState: models.GameComingSoon}
	}
	return &models.GameStateResponse{GameState: cfg.Normalized().GameState}
}

func (s *Service) listQuestions(ctx context.Context) (models.QuestionSet, error) {
	qs, err := s.questions.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load questions")
	}
	return qs, nil
}

func (s *Service) countAnswer(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementAnswers(outcome)
	}
}

func (s *Service) countHint(outcome string) {
	if s.metrics != nil {
		s.metrics.IncrementHints(outcome)
	}
}

// currentQuestion finds questionID and insists it is the user's current one.
func currentQuestion(questions models.QuestionSet, user *models.User, questionID string) (*models.Question, error) {
	q := questions.ByID(questionID)
	if q == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "Question not found")
	}
	if q.Order != user.CurrentQuestion {
		return nil, dErrors.New(dErrors.CodeForbidden, "Question is not your current question")
	}
	return q, nil
}

func answersMatch(given, expected string) bool {
	return strings.ToLower(strings.TrimSpace(given)) == strings.ToLower(strings.TrimSpace(expected))
}
