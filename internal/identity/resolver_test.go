package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"enigma/internal/identity/mocks"
	"enigma/internal/puzzle/models"
	dErrors "enigma/pkg/domain-errors"
	"enigma/pkg/platform/sentinel"
)

const (
	adminUUID = "admin-b290-6877-42c1"
	dashUUID  = "dash-52dc-2330-49f1"
	userUUID  = "user-demo-1234-5678"
)

// =============================================================================
// Resolver Test Suite
// =============================================================================
// Justification: role resolution gates every endpoint. Tests pin the match
// order, the no-match result and that store failures never grant or deny.

type ResolverSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	config   *mocks.MockConfigReader
	users    *mocks.MockUserReader
	resolver *Resolver
	ctx      context.Context
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.config = mocks.NewMockConfigReader(s.ctrl)
	s.users = mocks.NewMockUserReader(s.ctrl)
	var err error
	s.resolver, err = NewResolver(s.config, s.users)
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *ResolverSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ResolverSuite) adminConfig() *models.AdminConfig {
	return &models.AdminConfig{AdminUUID: adminUUID, DashboardUUID: dashUUID}
}

func (s *ResolverSuite) TestNew() {
	_, err := NewResolver(nil, s.users)
	s.ErrorContains(err, "config reader is required")
	_, err = NewResolver(s.config, nil)
	s.ErrorContains(err, "user reader is required")
}

// =============================================================================
// Resolve
// =============================================================================

func (s *ResolverSuite) TestResolve() {
	s.Run("admin", func() {
		s.config.EXPECT().Get(gomock.Any()).Return(s.adminConfig(), nil)
		id, err := s.resolver.Resolve(s.ctx, adminUUID)
		s.Require().NoError(err)
		s.True(id.Valid)
		s.Equal(models.RoleAdmin, id.Role)
		s.Nil(id.User)
	})

	s.Run("dashboard", func() {
		s.config.EXPECT().Get(gomock.Any()).Return(s.adminConfig(), nil)
		id, err := s.resolver.Resolve(s.ctx, dashUUID)
		s.Require().NoError(err)
		s.Equal(models.RoleDashboard, id.Role)
	})

	s.Run("user carries its record", func() {
		user := &models.User{UUID: userUUID, Name: "Demo"}
		s.config.EXPECT().Get(gomock.Any()).Return(s.adminConfig(), nil)
		s.users.EXPECT().Get(gomock.Any(), userUUID).Return(user, nil)
		id, err := s.resolver.Resolve(s.ctx, userUUID)
		s.Require().NoError(err)
		s.Equal(models.RoleUser, id.Role)
		s.Same(user, id.User)
	})

	s.Run("unknown uuid", func() {
		s.config.EXPECT().Get(gomock.Any()).Return(s.adminConfig(), nil)
		s.users.EXPECT().Get(gomock.Any(), "user-nobody-0000").Return(nil, sentinel.ErrNotFound)
		id, err := s.resolver.Resolve(s.ctx, "user-nobody-0000")
		s.Require().NoError(err)
		s.False(id.Valid)
		s.Equal(models.RoleNone, id.Role)
	})

	s.Run("unseeded config still resolves users", func() {
		s.config.EXPECT().Get(gomock.Any()).Return(nil, sentinel.ErrNotFound)
		s.users.EXPECT().Get(gomock.Any(), userUUID).Return(&models.User{UUID: userUUID}, nil)
		id, err := s.resolver.Resolve(s.ctx, userUUID)
		s.Require().NoError(err)
		s.Equal(models.RoleUser, id.Role)
	})

	s.Run("malformed uuid never reaches the store", func() {
		id, err := s.resolver.Resolve(s.ctx, "<script>")
		s.Require().NoError(err)
		s.False(id.Valid)
	})

	s.Run("config failure is an error", func() {
		s.config.EXPECT().Get(gomock.Any()).Return(nil, errors.New("connection refused"))
		_, err := s.resolver.Resolve(s.ctx, adminUUID)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("user store failure is an error", func() {
		s.config.EXPECT().Get(gomock.Any()).Return(s.adminConfig(), nil)
		s.users.EXPECT().Get(gomock.Any(), userUUID).Return(nil, dErrors.New(dErrors.CodeTimeout, "deadline"))
		_, err := s.resolver.Resolve(s.ctx, userUUID)
		s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	})
}

// =============================================================================
// Require and middleware
// =============================================================================

func (s *ResolverSuite) TestRequire() {
	s.Run("missing uuid", func() {
		_, err := s.resolver.Require(s.ctx, "", models.RoleAdmin)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("malformed uuid", func() {
		_, err := s.resolver.Require(s.ctx, "bad id", models.RoleAdmin)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown uuid is unauthorized", func() {
		s.config.EXPECT().Get(gomock.Any()).Return(s.adminConfig(), nil)
		s.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)
		_, err := s.resolver.Require(s.ctx, "user-nobody-0000", models.RoleUser)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("role mismatch is forbidden", func() {
		s.config.EXPECT().Get(gomock.Any()).Return(s.adminConfig(), nil)
		_, err := s.resolver.Require(s.ctx, dashUUID, models.RoleAdmin)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("any of several roles", func() {
		s.config.EXPECT().Get(gomock.Any()).Return(s.adminConfig(), nil)
		id, err := s.resolver.Require(s.ctx, dashUUID, models.RoleAdmin, models.RoleDashboard)
		s.Require().NoError(err)
		s.Equal(models.RoleDashboard, id.Role)
	})
}

func (s *ResolverSuite) TestRequireRoleMiddleware() {
	var seen *Identity
	h := RequireRole(s.resolver, nil, models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	s.Run("header identity passes", func() {
		s.config.EXPECT().Get(gomock.Any()).Return(s.adminConfig(), nil)
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req.Header.Set(HeaderUUID, adminUUID)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		s.Equal(http.StatusNoContent, rec.Code)
		s.Require().NotNil(seen)
		s.Equal(models.RoleAdmin, seen.Role)
	})

	s.Run("query parameter wins over header", func() {
		s.config.EXPECT().Get(gomock.Any()).Return(s.adminConfig(), nil)
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users?uuid="+dashUUID, nil)
		req.Header.Set(HeaderUUID, adminUUID)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("missing identity", func() {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
