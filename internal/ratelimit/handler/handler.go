package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"enigma/internal/identity"
	"enigma/internal/ratelimit/models"
	"enigma/pkg/platform/httputil"
	"enigma/pkg/platform/requestcontext"
)

type Service interface {
	ResetRateLimit(ctx context.Context, callerUUID string, req *models.ResetRequest) (*models.ResetResponse, error)
	ListLocks(ctx context.Context, callerUUID string) ([]models.UserLockView, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterAdmin mounts the override routes. The caller's role is checked by
// the service, so the routes are safe without the identity middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/rate-limits", h.HandleListLocks)
	r.Post("/admin/rate-limits/reset", h.HandleReset)
}

// HandleListLocks implements GET /api/admin/rate-limits.
func (h *Handler) HandleListLocks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	views, err := h.service.ListLocks(ctx, identity.UUIDFromRequest(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list rate limits",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, views)
}

// HandleReset implements POST /api/admin/rate-limits/reset.
// Input: { "userUuid": "user-...", "type": "answer" | "hint" | "both" }
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[models.ResetRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	resp, err := h.service.ResetRateLimit(ctx, identity.UUIDFromRequest(r), req)
	if err != nil {
		h.logger.WarnContext(ctx, "rate limit reset rejected",
			"error", err,
			"user_uuid", req.UserUUID,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, resp)
}
