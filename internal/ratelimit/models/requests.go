package models

import (
	"strings"

	dErrors "enigma/pkg/domain-errors"
	"enigma/pkg/platform/validation"
)

// ResetRequest is the admin override payload.
type ResetRequest struct {
	UserUUID string `json:"userUuid"`
	Type     string `json:"type"`
}

func (r *ResetRequest) Normalize() {
	if r == nil {
		return
	}
	r.UserUUID = strings.TrimSpace(r.UserUUID)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Type == "" {
		r.Type = string(TargetBoth)
	}
}

// Validate follows the order size, required, syntax.
func (r *ResetRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.UserUUID) > 50 {
		return dErrors.New(dErrors.CodeValidation, "userUuid must be 50 characters or less")
	}
	if r.UserUUID == "" {
		return dErrors.New(dErrors.CodeValidation, "userUuid is required")
	}
	if !validation.IsAccessID(r.UserUUID) {
		return dErrors.New(dErrors.CodeValidation, "userUuid is not a valid access UUID")
	}
	_, err := ParseTarget(r.Type)
	return err
}
