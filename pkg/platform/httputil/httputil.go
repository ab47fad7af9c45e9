package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "enigma/pkg/domain-errors"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// WriteJSON writes response as-is. Health probes use it directly; API
// handlers go through WriteData and WriteError.
func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent, so an encoding failure cannot change the status.
	_ = json.NewEncoder(w).Encode(response)
}

// WriteData writes a successful envelope.
func WriteData(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Envelope{Success: true, Data: data})
}

// WriteError translates transport-agnostic domain errors into an error envelope.
// Internal failures never leak their message.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		msg := domainErr.Message
		if domainErr.Code == dErrors.CodeInternal || msg == "" {
			msg = defaultMessage(domainErr.Code)
		}
		WriteJSON(w, DomainCodeToHTTPStatus(domainErr.Code), Envelope{
			Error: msg,
			Code:  DomainCodeToHTTPCode(domainErr.Code),
		})
		return
	}

	WriteJSON(w, http.StatusInternalServerError, Envelope{
		Error: defaultMessage(dErrors.CodeInternal),
		Code:  DomainCodeToHTTPCode(dErrors.CodeInternal),
	})
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeGone:
		return http.StatusGone
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// DomainCodeToHTTPCode translates domain error codes to the envelope's code field.
func DomainCodeToHTTPCode(code dErrors.Code) string {
	switch code {
	case dErrors.CodeNotFound:
		return "not_found"
	case dErrors.CodeBadRequest:
		return "bad_request"
	case dErrors.CodeValidation:
		return "validation_error"
	case dErrors.CodeConflict:
		return "conflict"
	case dErrors.CodeUnauthorized:
		return "unauthorized"
	case dErrors.CodeForbidden:
		return "forbidden"
	case dErrors.CodeGone:
		return "gone"
	case dErrors.CodeTimeout:
		return "store_timeout"
	default:
		return "internal_error"
	}
}

func defaultMessage(code dErrors.Code) string {
	switch code {
	case dErrors.CodeUnauthorized:
		return "Invalid or missing access UUID"
	case dErrors.CodeForbidden:
		return "Access denied"
	case dErrors.CodeNotFound:
		return "Not found"
	case dErrors.CodeTimeout:
		return "Storage did not respond in time"
	default:
		return "Internal server error"
	}
}
