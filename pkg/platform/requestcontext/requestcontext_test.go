package requestcontext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
	assert.Equal(t, "req-1", RequestID(WithRequestID(context.Background(), "req-1")))
}

func TestClient(t *testing.T) {
	_, ok := ClientFrom(context.Background())
	assert.False(t, ok)

	ctx := WithClient(context.Background(), Client{Browser: "Firefox", OS: "Linux x86_64"})
	c, ok := ClientFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, "Firefox", c.Browser)
}
