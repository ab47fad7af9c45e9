package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"enigma/internal/identity"
	"enigma/internal/puzzle/models"
	"enigma/pkg/platform/httputil"
	"enigma/pkg/platform/requestcontext"
)

type service interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userUUID string) error
	ListQuestions(ctx context.Context) (models.QuestionSet, error)
	ReplaceQuestions(ctx context.Context, req models.ReplaceQuestionsRequest) (models.QuestionSet, error)
	GetConfig(ctx context.Context) (*models.AdminConfig, error)
	UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.AdminConfig, error)
	Dashboard(ctx context.Context, role models.Role) (*models.DashboardResponse, error)
}

// Handler handles the admin console and dashboard endpoints
type Handler struct {
	service service
	logger  *slog.Logger
}

func New(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the admin-only routes. The router guards them with
// identity.RequireRole(admin).
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/users", h.HandleListUsers)
	r.Post("/admin/users", h.HandleCreateUser)
	r.Delete("/admin/users", h.HandleDeleteUser)
	r.Get("/admin/questions", h.HandleListQuestions)
	r.Post("/admin/questions", h.HandleReplaceQuestions)
	r.Get("/admin/config", h.HandleGetConfig)
	r.Put("/admin/config", h.HandleUpdateConfig)
}

// RegisterDashboard mounts GET /dashboard. The router admits the admin and
// dashboard roles.
func (h *Handler) RegisterDashboard(r chi.Router) {
	r.Get("/dashboard", h.HandleDashboard)
}

func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	users, err := h.service.ListUsers(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to list users", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, users)
}

// HandleCreateUser implements POST /api/admin/users.
// Input: { "name": "..." }
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateUserRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	user, err := h.service.CreateUser(ctx, req)
	if err != nil {
		h.fail(ctx, w, "failed to create user", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, user)
}

// HandleDeleteUser implements DELETE /api/admin/users?userUuid=.
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.DeleteUser(ctx, r.URL.Query().Get("userUuid")); err != nil {
		h.fail(ctx, w, "failed to delete user", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (h *Handler) HandleListQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	qs, err := h.service.ListQuestions(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to list questions", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, qs)
}

// HandleReplaceQuestions implements POST /api/admin/questions.
// Input: the complete question array.
func (h *Handler) HandleReplaceQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.ReplaceQuestionsRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	qs, err := h.service.ReplaceQuestions(ctx, *req)
	if err != nil {
		h.fail(ctx, w, "failed to replace questions", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, qs)
}

func (h *Handler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cfg, err := h.service.GetConfig(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to get config", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, cfg)
}

// HandleUpdateConfig implements PUT /api/admin/config.
// Input: { "adminUuid", "dashboardUuid", "rateLimitConfig"?, "gameState"? }
func (h *Handler) HandleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.UpdateConfigRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	cfg, err := h.service.UpdateConfig(ctx, req)
	if err != nil {
		h.fail(ctx, w, "failed to update config", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, cfg)
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	role := models.RoleNone
	if id, ok := identity.FromContext(ctx); ok {
		role = id.Role
	}
	resp, err := h.service.Dashboard(ctx, role)
	if err != nil {
		h.fail(ctx, w, "failed to build dashboard", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, resp)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}
