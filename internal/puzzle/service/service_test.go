package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"enigma/internal/identity"
	"enigma/internal/puzzle/metrics"
	"enigma/internal/puzzle/models"
	"enigma/internal/puzzle/store"
	"enigma/internal/ratelimit/service/lockout"
	"enigma/internal/storage/kv"
	dErrors "enigma/pkg/domain-errors"
	"enigma/pkg/platform/middleware/requesttime"
)

const (
	adminUUID = "admin-b290-6877-42c1"
	dashUUID  = "dash-52dc-2330-49f1"
	userUUID  = "user-demo-1234-5678"
)

// =============================================================================
// Puzzle Flow Test Suite
// =============================================================================
// Justification: these flows are where the lockout engine meets puzzle
// content. Tests run the real resolver, engine and repositories over the
// in-memory backend with an injected clock.

type PuzzleServiceSuite struct {
	suite.Suite
	users   *store.UserStore
	config  *store.ConfigStore
	metrics *metrics.Metrics
	service *Service
	start   time.Time
}

func TestPuzzleServiceSuite(t *testing.T) {
	suite.Run(t, new(PuzzleServiceSuite))
}

func (s *PuzzleServiceSuite) SetupTest() {
	ctx := context.Background()
	backend := kv.NewInMemory()
	keys := store.NewKeys("")
	s.users = store.NewUserStore(backend, keys)
	s.config = store.NewConfigStore(backend, keys)
	questions := store.NewQuestionStore(backend, keys)
	s.start = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.config.Save(ctx, &models.AdminConfig{AdminUUID: adminUUID, DashboardUUID: dashUUID, GameState: models.GameActive}))
	s.Require().NoError(questions.Replace(ctx, models.QuestionSet{
		{ID: "q1", Text: "I have keys but open no locks", Answer: "Piano", Hints: []string{"music"}, Order: 1},
		{ID: "q2", Text: "I get shorter as I burn", Answer: "candle", Hints: []string{"wax", "light"}, HintPassword: "music123", Order: 2},
		{ID: "q3", Text: "The more I dry the wetter I get", Answer: "towel", Order: 3},
	}))
	s.Require().NoError(s.users.Create(ctx, models.NewUser(userUUID, "Demo", s.start)))

	resolver, err := identity.NewResolver(s.config, s.users)
	s.Require().NoError(err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine, err := lockout.New(s.users, s.config, lockout.WithLogger(logger))
	s.Require().NoError(err)

	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service, err = New(resolver, engine, questions, s.config,
		WithLogger(logger),
		WithMetrics(s.metrics),
	)
	s.Require().NoError(err)
}

func (s *PuzzleServiceSuite) at(offset time.Duration) context.Context {
	return requesttime.WithTime(context.Background(), s.start.Add(offset))
}

func (s *PuzzleServiceSuite) user() *models.User {
	u, err := s.users.Get(context.Background(), userUUID)
	s.Require().NoError(err)
	return u
}

func (s *PuzzleServiceSuite) answer(offset time.Duration, questionID, text string) *models.AnswerResponse {
	resp, err := s.service.SubmitAnswer(s.at(offset), &models.AnswerRequest{UUID: userUUID, QuestionID: questionID, Answer: text})
	s.Require().NoError(err)
	return resp
}

func (s *PuzzleServiceSuite) hint(offset time.Duration, questionID, password string) *models.HintResponse {
	resp, err := s.service.RequestHints(s.at(offset), &models.HintRequest{UUID: userUUID, QuestionID: questionID, Password: password})
	s.Require().NoError(err)
	return resp
}

// =============================================================================
// Answers
// =============================================================================

func (s *PuzzleServiceSuite) TestCorrectAnswerAdvances() {
	resp := s.answer(time.Minute, "q1", "  PIANO ")

	s.True(resp.Correct)
	s.False(resp.Completed)
	s.Require().NotNil(resp.NextQuestion)
	s.Equal("q2", resp.NextQuestion.ID)
	s.True(resp.NextQuestion.HintsRequirePassword)
	s.Equal(models.Progress{Current: 2, Total: 3, Percentage: 33}, resp.Progress)

	u := s.user()
	s.Equal([]string{"q1"}, u.CompletedQuestions)
	s.Equal(s.start.Add(time.Minute), u.LastActivity)
}

func (s *PuzzleServiceSuite) TestLockoutScenario() {
	s.Run("third wrong answer locks for ten minutes", func() {
		s.False(s.answer(0, "q1", "guitar").RateLimited)
		s.False(s.answer(0, "q1", "drum").RateLimited)
		resp := s.answer(0, "q1", "flute")
		s.False(resp.Correct)
		s.True(resp.RateLimited)
		s.Equal(600, resp.LockTimeRemaining)
	})

	s.Run("locked attempt is rejected without evaluating the answer", func() {
		resp := s.answer(time.Minute, "q1", "piano")
		s.False(resp.Correct)
		s.True(resp.RateLimited)
		s.Equal(540, resp.LockTimeRemaining)
		s.Equal(1, s.user().CurrentQuestion)
		s.Equal(float64(1), promtest.ToFloat64(s.metrics.Answers.WithLabelValues(metrics.AnswerRateLimited)))
	})

	s.Run("locked attempt does not reveal unknown questions", func() {
		resp := s.answer(time.Minute, "does-not-exist", "x")
		s.True(resp.RateLimited)
	})

	s.Run("after expiry the correct answer clears both channels", func() {
		resp := s.answer(10*time.Minute+time.Second, "q1", "piano")
		s.True(resp.Correct)

		u := s.user()
		s.Equal(2, u.CurrentQuestion)
		s.Contains(u.CompletedQuestions, "q1")
		s.Zero(u.RateLimit.AnswerFailures)
		s.Nil(u.RateLimit.AnswerLockedUntil)
		s.Equal(3, u.RateLimit.TotalAnswerFailures)
	})
}

func (s *PuzzleServiceSuite) TestAnswerAuthorization() {
	s.Run("unknown question", func() {
		_, err := s.service.SubmitAnswer(s.at(0), &models.AnswerRequest{UUID: userUUID, QuestionID: "q9", Answer: "x"})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("future question is forbidden even when correct", func() {
		_, err := s.service.SubmitAnswer(s.at(0), &models.AnswerRequest{UUID: userUUID, QuestionID: "q2", Answer: "candle"})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Zero(s.user().RateLimit.AnswerFailures, "a rejected attempt is not a failure")
	})

	s.Run("solved question cannot be resubmitted", func() {
		s.answer(0, "q1", "piano")
		_, err := s.service.SubmitAnswer(s.at(0), &models.AnswerRequest{UUID: userUUID, QuestionID: "q1", Answer: "piano"})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		s.Equal([]string{"q1"}, s.user().CompletedQuestions)
	})

	s.Run("admin cannot answer", func() {
		_, err := s.service.SubmitAnswer(s.at(0), &models.AnswerRequest{UUID: adminUUID, QuestionID: "q1", Answer: "piano"})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("unknown uuid", func() {
		_, err := s.service.SubmitAnswer(s.at(0), &models.AnswerRequest{UUID: "user-nobody-0000", QuestionID: "q1", Answer: "piano"})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *PuzzleServiceSuite) TestFinalAnswerCompletes() {
	s.answer(0, "q1", "piano")
	s.answer(0, "q2", "candle")
	resp := s.answer(0, "q3", "towel")

	s.True(resp.Correct)
	s.True(resp.Completed)
	s.Nil(resp.NextQuestion)
	s.Equal(100, resp.Progress.Percentage)
	s.Equal(float64(1), promtest.ToFloat64(s.metrics.Completions))

	q, err := s.service.CurrentQuestion(s.at(0), userUUID)
	s.Require().NoError(err)
	s.True(q.Completed)
	s.Nil(q.Question)
}

// =============================================================================
// Hints
// =============================================================================

func (s *PuzzleServiceSuite) TestPublicHints() {
	resp := s.hint(0, "q1", "")
	s.Equal([]string{"music"}, resp.Hints)
	s.False(resp.RequiresPassword)
}

func (s *PuzzleServiceSuite) TestHintPasswordScenario() {
	s.answer(0, "q1", "piano")

	s.Run("asking without a password is free", func() {
		resp := s.hint(0, "q2", "")
		s.True(resp.RequiresPassword)
		s.Empty(resp.Hints)
		s.Zero(s.user().RateLimit.HintFailures)
	})

	s.Run("third wrong password locks hints for 25 minutes", func() {
		s.hint(0, "q2", "wrong1")
		s.hint(0, "q2", "wrong2")
		resp := s.hint(0, "q2", "wrong3")
		s.True(resp.RequiresPassword)
		s.True(resp.RateLimited)
		s.Equal(1500, resp.LockTimeRemaining)
	})

	s.Run("locked hint channel ignores the correct password", func() {
		resp := s.hint(time.Minute, "q2", "music123")
		s.True(resp.RateLimited)
		s.Empty(resp.Hints)
	})

	s.Run("answers stay open while hints are locked", func() {
		resp := s.answer(2*time.Minute, "q2", "wax")
		s.False(resp.RateLimited)
		s.Equal(1, s.user().RateLimit.AnswerFailures)
	})

	s.Run("correct password after expiry reveals hints and clears both channels", func() {
		resp := s.hint(26*time.Minute, "q2", "music123")
		s.Equal([]string{"wax", "light"}, resp.Hints)

		u := s.user()
		s.Zero(u.RateLimit.HintFailures)
		s.Zero(u.RateLimit.AnswerFailures)
		s.Equal(s.start.Add(26*time.Minute), u.LastActivity)
	})
}

func (s *PuzzleServiceSuite) TestHintAuthorization() {
	s.Run("question without hints", func() {
		s.answer(0, "q1", "piano")
		s.answer(0, "q2", "candle")
		_, err := s.service.RequestHints(s.at(0), &models.HintRequest{UUID: userUUID, QuestionID: "q3"})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("other question", func() {
		_, err := s.service.RequestHints(s.at(0), &models.HintRequest{UUID: userUUID, QuestionID: "q1"})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

// =============================================================================
// Read-only flows
// =============================================================================

func (s *PuzzleServiceSuite) TestCurrentQuestion() {
	q, err := s.service.CurrentQuestion(s.at(0), userUUID)
	s.Require().NoError(err)
	s.Equal("q1", q.Question.ID)
	s.False(q.IsLastQuestion)
	s.Equal(models.Progress{Current: 1, Total: 3}, q.Progress)
}

func (s *PuzzleServiceSuite) TestValidate() {
	resp, err := s.service.Validate(s.at(0), dashUUID)
	s.Require().NoError(err)
	s.Equal(&models.ValidateResponse{Valid: true, Role: models.RoleDashboard}, resp)

	resp, err = s.service.Validate(s.at(0), "user-nobody-0000")
	s.Require().NoError(err)
	s.False(resp.Valid)
}

func (s *PuzzleServiceSuite) TestGameState() {
	s.Equal(models.GameActive, s.service.GameState(s.at(0)).GameState)

	empty := store.NewConfigStore(kv.NewInMemory(), store.NewKeys(""))
	svc := &Service{config: empty}
	s.Equal(models.GameComingSoon, svc.GameState(s.at(0)).GameState)
}
