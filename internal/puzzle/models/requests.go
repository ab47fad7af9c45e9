package models

import (
	"fmt"
	"strings"
	"time"

	"enigma/internal/platform/sanitize"
	ratelimit "enigma/internal/ratelimit/config"
	dErrors "enigma/pkg/domain-errors"
	"enigma/pkg/platform/validation"
)

// AnswerRequest is a participant's answer submission. UUID may be empty when
// the identity travels in the query string or header.
type AnswerRequest struct {
	UUID       string `json:"uuid"`
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

func (r *AnswerRequest) Normalize() {
	if r == nil {
		return
	}
	r.UUID = strings.TrimSpace(r.UUID)
	r.QuestionID = strings.TrimSpace(r.QuestionID)
}

// Validate follows the order size, required, syntax.
func (r *AnswerRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.CheckStringLength("answer", r.Answer, validation.MaxAnswerLength); err != nil {
		return err
	}
	if r.QuestionID == "" {
		return dErrors.New(dErrors.CodeValidation, "questionId is required")
	}
	if strings.TrimSpace(r.Answer) == "" {
		return dErrors.New(dErrors.CodeValidation, "answer is required")
	}
	if r.UUID != "" && !validation.IsAccessID(r.UUID) {
		return dErrors.New(dErrors.CodeValidation, "uuid is not a valid access UUID")
	}
	return nil
}

// HintRequest asks for the hints of a question, optionally with a password.
type HintRequest struct {
	UUID       string `json:"uuid"`
	QuestionID string `json:"questionId"`
	Password   string `json:"password,omitempty"`
}

func (r *HintRequest) Normalize() {
	if r == nil {
		return
	}
	r.UUID = strings.TrimSpace(r.UUID)
	r.QuestionID = strings.TrimSpace(r.QuestionID)
	r.Password = strings.TrimSpace(r.Password)
}

func (r *HintRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.CheckStringLength("password", r.Password, validation.MaxHintPasswordLength); err != nil {
		return err
	}
	if r.QuestionID == "" {
		return dErrors.New(dErrors.CodeValidation, "questionId is required")
	}
	if r.UUID != "" && !validation.IsAccessID(r.UUID) {
		return dErrors.New(dErrors.CodeValidation, "uuid is not a valid access UUID")
	}
	return nil
}

// CreateUserRequest adds a participant.
type CreateUserRequest struct {
	Name string `json:"name" validate:"required,max=50,displayname"`
}

func (r *CreateUserRequest) Sanitize() {
	if r == nil {
		return
	}
	r.Name = sanitize.Text(r.Name)
}

func (r *CreateUserRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.CheckStringLength("name", r.Name, validation.MaxNameLength); err != nil {
		return err
	}
	return validation.Validate(r)
}

// ReplaceQuestionsRequest replaces the whole question set.
type ReplaceQuestionsRequest []Question

func (r *ReplaceQuestionsRequest) Sanitize() {
	if r == nil {
		return
	}
	for i := range *r {
		q := &(*r)[i]
		q.Text = sanitize.Text(q.Text)
		q.Answer = sanitize.Text(q.Answer)
		q.Hints = sanitize.Texts(q.Hints)
	}
}

func (r *ReplaceQuestionsRequest) Normalize() {
	if r == nil {
		return
	}
	for i := range *r {
		q := &(*r)[i]
		q.ID = strings.TrimSpace(q.ID)
		q.HintPassword = strings.TrimSpace(q.HintPassword)
	}
}

// Validate checks sizes first, then per-question content, then the
// uniqueness of ids and orders across the set.
func (r *ReplaceQuestionsRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	qs := *r
	if err := validation.CheckSliceCount("questions", len(qs), validation.MaxQuestions); err != nil {
		return err
	}
	for i := range qs {
		if err := validateQuestion(&qs[i]); err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("question %d: %s", i+1, err.Error()))
		}
	}
	ids := make(map[string]struct{}, len(qs))
	orders := make(map[int]struct{}, len(qs))
	for _, q := range qs {
		if _, dup := ids[q.ID]; dup {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("duplicate question id %q", q.ID))
		}
		ids[q.ID] = struct{}{}
		if _, dup := orders[q.Order]; dup {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("duplicate question order %d", q.Order))
		}
		orders[q.Order] = struct{}{}
	}
	return nil
}

func validateQuestion(q *Question) error {
	if err := validation.CheckStringLength("text", q.Text, validation.MaxQuestionTextLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("answer", q.Answer, validation.MaxAnswerLength); err != nil {
		return err
	}
	if err := validation.CheckSliceCount("hints", len(q.Hints), validation.MaxHints); err != nil {
		return err
	}
	if err := validation.CheckEachStringLength("hints", q.Hints, validation.MaxHintLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("hintPassword", q.HintPassword, validation.MaxHintPasswordLength); err != nil {
		return err
	}
	switch {
	case q.ID == "":
		return dErrors.New(dErrors.CodeValidation, "id is required")
	case q.Text == "":
		return dErrors.New(dErrors.CodeValidation, "text is required")
	case q.Answer == "":
		return dErrors.New(dErrors.CodeValidation, "answer is required")
	case q.Order < 1:
		return dErrors.New(dErrors.CodeValidation, "order must be a positive integer")
	}
	return validation.Validate(struct {
		HintPassword string `json:"hintPassword" validate:"hintpassword"`
	}{q.HintPassword})
}

// UpdateConfigRequest edits the game configuration. Omitted optional fields
// keep their stored values.
type UpdateConfigRequest struct {
	AdminUUID       string            `json:"adminUuid" validate:"required,accessid"`
	DashboardUUID   string            `json:"dashboardUuid" validate:"required,accessid,nefield=AdminUUID"`
	RateLimitConfig *ratelimit.Config `json:"rateLimitConfig,omitempty"`
	GameState       *GameState        `json:"gameState,omitempty"`
}

func (r *UpdateConfigRequest) Normalize() {
	if r == nil {
		return
	}
	r.AdminUUID = strings.TrimSpace(r.AdminUUID)
	r.DashboardUUID = strings.TrimSpace(r.DashboardUUID)
}

func (r *UpdateConfigRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.Validate(r); err != nil {
		return err
	}
	if r.RateLimitConfig != nil {
		if err := r.RateLimitConfig.Validate(); err != nil {
			return err
		}
	}
	if r.GameState != nil && !r.GameState.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "gameState must be 'coming-soon' or 'active'")
	}
	return nil
}

// Apply merges the request into current.
func (r *UpdateConfigRequest) Apply(current AdminConfig) AdminConfig {
	current.AdminUUID = r.AdminUUID
	current.DashboardUUID = r.DashboardUUID
	if r.RateLimitConfig != nil {
		current.RateLimitConfig = *r.RateLimitConfig
	}
	if r.GameState != nil {
		current.GameState = *r.GameState
	}
	return current
}

// CreateHintRouteRequest publishes a standalone hint page.
type CreateHintRouteRequest struct {
	Content   string     `json:"content"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func (r *CreateHintRouteRequest) Sanitize() {
	if r == nil {
		return
	}
	r.Content = sanitize.Text(r.Content)
}

func (r *CreateHintRouteRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.CheckStringLength("content", r.Content, validation.MaxHintRouteLength); err != nil {
		return err
	}
	if r.Content == "" {
		return dErrors.New(dErrors.CodeValidation, "content is required")
	}
	return nil
}

// UpdateHintRouteRequest toggles a hint route or moves its expiry.
type UpdateHintRouteRequest struct {
	IsActive  *bool      `json:"isActive,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func (r *UpdateHintRouteRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.IsActive == nil && r.ExpiresAt == nil {
		return dErrors.New(dErrors.CodeValidation, "isActive or expiresAt is required")
	}
	return nil
}
