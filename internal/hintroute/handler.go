package hintroute

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"enigma/internal/puzzle/models"
	"enigma/pkg/platform/httputil"
	"enigma/pkg/platform/requestcontext"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterAdmin mounts route management behind the admin guard.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/hint-routes", h.HandleList)
	r.Post("/admin/hint-routes", h.HandleCreate)
	r.Patch("/admin/hint-routes", h.HandleUpdate)
	r.Delete("/admin/hint-routes", h.HandleDelete)
}

// RegisterPublic mounts the visitor route. It needs no identity.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/hint-route/{id}", h.HandleResolve)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	routes, err := h.service.List(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to list hint routes", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, routes)
}

// HandleCreate implements POST /api/admin/hint-routes.
// Input: { "content": "...", "expiresAt": "RFC3339, optional" }
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateHintRouteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	route, err := h.service.Create(ctx, req)
	if err != nil {
		h.fail(ctx, w, "failed to create hint route", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, route)
}

// HandleUpdate implements PATCH /api/admin/hint-routes?routeUuid=.
// Input: { "isActive": bool?, "expiresAt": "RFC3339"? }
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.UpdateHintRouteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	route, err := h.service.Update(ctx, r.URL.Query().Get("routeUuid"), req)
	if err != nil {
		h.fail(ctx, w, "failed to update hint route", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, route)
}

// HandleDelete implements DELETE /api/admin/hint-routes?routeUuid=.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Delete(ctx, r.URL.Query().Get("routeUuid")); err != nil {
		h.fail(ctx, w, "failed to delete hint route", err)
		return
	}
	httputil.WriteData(w, http.StatusOK, map[string]bool{"deleted": true})
}

// HandleResolve implements GET /api/hint-route/{id}.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	route, err := h.service.Resolve(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.logger.InfoContext(ctx, "hint route unavailable",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, route)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteError(w, err)
}
