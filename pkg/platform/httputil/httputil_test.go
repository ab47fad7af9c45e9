package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "enigma/pkg/domain-errors"
)

func TestWriteData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusOK, map[string]bool{"correct": true})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"correct":true}}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
		msg    string
	}{
		{"unauthorized", dErrors.New(dErrors.CodeUnauthorized, "Invalid UUID"), http.StatusUnauthorized, "unauthorized", "Invalid UUID"},
		{"forbidden", dErrors.New(dErrors.CodeForbidden, "Not your current question"), http.StatusForbidden, "forbidden", "Not your current question"},
		{"gone", dErrors.New(dErrors.CodeGone, "Hint has expired"), http.StatusGone, "gone", "Hint has expired"},
		{"timeout", fmt.Errorf("load: %w", dErrors.New(dErrors.CodeTimeout, "")), http.StatusGatewayTimeout, "store_timeout", "Storage did not respond in time"},
		{"internal hides message", dErrors.New(dErrors.CodeInternal, "pq: relation missing"), http.StatusInternalServerError, "internal_error", "Internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error", "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tc.code, env.Code)
			assert.Equal(t, tc.msg, env.Error)
		})
	}
}
