package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enigma/pkg/platform/requestcontext"
)

func TestLogAudit(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := requestcontext.WithRequestID(context.Background(), "req-42")

	LogAudit(ctx, logger, "answer_lockout_triggered", "user_uuid", "user-demo-1234")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "answer_lockout_triggered", entry["msg"])
	assert.Equal(t, "answer_lockout_triggered", entry["event"])
	assert.Equal(t, "audit", entry["log_type"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "user-demo-1234", entry["user_uuid"])
}

func TestLogAuditNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogAudit(context.Background(), nil, "noop")
	})
}
