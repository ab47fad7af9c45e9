package handler

//go:generate mockgen -source=handler.go -destination=mocks/handler_mock.go -package=mocks Service

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

type Service interface {
	SubmitAnswer(ctx context.Context, req *models.AnswerRequest) (*models.AnswerResponse, error)
	RequestHints(ctx context.Context, req *models.HintRequest) (*models.HintResponse, error)
	CurrentQuestion(ctx context.Context, uuid string) (*models.QuestionResponse, error)
	Validate(ctx context.Context, uuid string) (*models.ValidateResponse, error)
	GameState(ctx context.Context) *models.GameStateResponse
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

// Register mounts the participant routes. Identity is resolved by the
// service so every route carries its own role rules.
func (h *Handler) Register(r chi.Router) {
	r.Get("/validate", h.HandleValidate)
	r.Get("/game-state", h.HandleGameState)
	r.Get("/question", h.HandleCurrentQuestion)
	r.Post("/answer", h.HandleAnswer)
	r.Post("/hint", h.HandleHint)
}

// HandleAnswer implements POST /api/answer.
// Input: { "uuid": "user-...", "questionId": "q1", "answer": "..." }
// Wrong and rate limited answers are 200 responses.
func (h *Handler) HandleAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.AnswerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if req.UUID == "" {
		req.UUID = identity.UUIDFromRequest(r)
	}

	resp, err := h.service.SubmitAnswer(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "answer rejected",
			"error", err,
			"question_id", req.QuestionID,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, resp)
}

// HandleHint implements POST /api/hint.
// Input: { "uuid": "user-...", "questionId": "q2", "password": "optional" }
func (h *Handler) HandleHint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.HintRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if req.UUID == "" {
		req.UUID = identity.UUIDFromRequest(r)
	}

	resp, err := h.service.RequestHints(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "hint request rejected",
			"error", err,
			"question_id", req.QuestionID,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, resp)
}

// HandleCurrentQuestion implements GET /api/question.
func (h *Handler) HandleCurrentQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := h.service.CurrentQuestion(ctx, identity.UUIDFromRequest(r))
	if err != nil {
		h.logger.WarnContext(ctx, "current question rejected",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, resp)
}

// HandleValidate implements GET /api/validate. An unknown or malformed
// uuid is a 200 with valid=false.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp, err := h.service.Validate(ctx, identity.UUIDFromRequest(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to validate uuid",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, resp)
}

// HandleGameState implements GET /api/game-state. It needs no identity.
func (h *Handler) HandleGameState(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.GameState(r.Context()))
}
