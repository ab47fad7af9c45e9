package admin

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks Resolver,Engine,UserLister

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"enigma/internal/identity"
	puzzle "enigma/internal/puzzle/models"
	"enigma/internal/ratelimit/admin/mocks"
	"enigma/internal/ratelimit/models"
	dErrors "enigma/pkg/domain-errors"
	"enigma/pkg/platform/middleware/requesttime"
)

const (
	adminUUID = "admin-b290-6877-42c1"
	userUUID  = "user-demo-1234-5678"
)

// =============================================================================
// Admin Override Test Suite
// =============================================================================
// Justification: the override bypasses normal expiry, so the service must
// re-check the caller role itself and pass exactly the requested target to
// the engine.

type AdminServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	resolver *mocks.MockResolver
	engine   *mocks.MockEngine
	users    *mocks.MockUserLister
	service  *Service
	ctx      context.Context
	now      time.Time
}

func TestAdminServiceSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceSuite))
}

func (s *AdminServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.resolver = mocks.NewMockResolver(s.ctrl)
	s.engine = mocks.NewMockEngine(s.ctrl)
	s.users = mocks.NewMockUserLister(s.ctrl)
	s.service, _ = New(s.resolver, s.engine, s.users,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requesttime.WithTime(context.Background(), s.now)
}

func (s *AdminServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AdminServiceSuite) asAdmin() {
	s.resolver.EXPECT().Resolve(gomock.Any(), adminUUID).
		Return(&identity.Identity{UUID: adminUUID, Valid: true, Role: puzzle.RoleAdmin}, nil)
}

// =============================================================================
// Constructor Tests (Invariant Enforcement)
// =============================================================================

func (s *AdminServiceSuite) TestNew() {
	s.Run("nil resolver returns error", func() {
		_, err := New(nil, s.engine, s.users)
		s.ErrorContains(err, "resolver is required")
	})
	s.Run("nil engine returns error", func() {
		_, err := New(s.resolver, nil, s.users)
		s.ErrorContains(err, "lockout engine is required")
	})
	s.Run("nil lister returns error", func() {
		_, err := New(s.resolver, s.engine, nil)
		s.ErrorContains(err, "user lister is required")
	})
}

// =============================================================================
// ResetRateLimit
// =============================================================================

func (s *AdminServiceSuite) TestResetRateLimit() {
	s.Run("normalized target reaches the engine", func() {
		s.asAdmin()
		s.engine.EXPECT().AdminReset(gomock.Any(), userUUID, models.TargetHint).
			Return(&puzzle.User{UUID: userUUID}, nil)

		resp, err := s.service.ResetRateLimit(s.ctx, adminUUID, &models.ResetRequest{UserUUID: " " + userUUID, Type: " HINT "})
		s.Require().NoError(err)
		s.Equal(models.TargetHint, resp.Type)
		s.Equal(userUUID, resp.UserUUID)
	})

	s.Run("empty type resets both", func() {
		s.asAdmin()
		s.engine.EXPECT().AdminReset(gomock.Any(), userUUID, models.TargetBoth).
			Return(&puzzle.User{UUID: userUUID}, nil)

		_, err := s.service.ResetRateLimit(s.ctx, adminUUID, &models.ResetRequest{UserUUID: userUUID})
		s.Require().NoError(err)
	})

	s.Run("invalid type is rejected before any lookup", func() {
		_, err := s.service.ResetRateLimit(s.ctx, adminUUID, &models.ResetRequest{UserUUID: userUUID, Type: "all"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("dashboard caller is forbidden", func() {
		s.resolver.EXPECT().Resolve(gomock.Any(), "dash-52dc-2330-49f1").
			Return(&identity.Identity{Valid: true, Role: puzzle.RoleDashboard}, nil)

		_, err := s.service.ResetRateLimit(s.ctx, "dash-52dc-2330-49f1", &models.ResetRequest{UserUUID: userUUID})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("unknown caller is unauthorized", func() {
		s.resolver.EXPECT().Resolve(gomock.Any(), "user-nobody-0000").
			Return(&identity.Identity{Valid: false}, nil)

		_, err := s.service.ResetRateLimit(s.ctx, "user-nobody-0000", &models.ResetRequest{UserUUID: userUUID})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("resolver failure fails closed", func() {
		s.resolver.EXPECT().Resolve(gomock.Any(), adminUUID).
			Return(nil, dErrors.New(dErrors.CodeTimeout, "store timeout"))

		_, err := s.service.ResetRateLimit(s.ctx, adminUUID, &models.ResetRequest{UserUUID: userUUID})
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})

	s.Run("missing target user", func() {
		s.asAdmin()
		s.engine.EXPECT().AdminReset(gomock.Any(), userUUID, models.TargetBoth).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "User not found"))

		_, err := s.service.ResetRateLimit(s.ctx, adminUUID, &models.ResetRequest{UserUUID: userUUID, Type: "both"})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

// =============================================================================
// ListLocks
// =============================================================================

func (s *AdminServiceSuite) TestListLocks() {
	s.Run("reports live and expired locks without clearing", func() {
		live := s.now.Add(90 * time.Second)
		expired := s.now.Add(-time.Second)
		users := []*puzzle.User{
			{UUID: userUUID, Name: "Demo", LastActivity: s.now, RateLimit: models.State{AnswerFailures: 3, AnswerLockedUntil: &live}},
			{UUID: "user-other-0000", Name: "Other", RateLimit: models.State{HintFailures: 3, HintLockedUntil: &expired}},
		}
		s.asAdmin()
		s.users.EXPECT().List(gomock.Any()).Return(users, nil)

		views, err := s.service.ListLocks(s.ctx, adminUUID)
		s.Require().NoError(err)
		s.Require().Len(views, 2)

		s.True(views[0].Answer.Locked)
		s.Equal(90, views[0].Answer.RemainingSeconds)
		s.Require().NotNil(views[0].LastActivity)

		s.False(views[1].Hint.Locked)
		s.Equal(3, views[1].RateLimit.HintFailures, "listing does not apply lazy expiry")
		s.Nil(views[1].LastActivity)
	})

	s.Run("store failure", func() {
		s.asAdmin()
		s.users.EXPECT().List(gomock.Any()).Return(nil, errors.New("boom"))

		_, err := s.service.ListLocks(s.ctx, adminUUID)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
