// Package requestcontext carries request-scoped identifiers through context.
package requestcontext

import "context"

type contextKeyRequestID struct{}
type contextKeyClient struct{}

// Client describes the caller's user agent in coarse terms suitable for logs.
type Client struct {
	Browser string
	OS      string
	Mobile  bool
	Bot     bool
}

// WithRequestID stores the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID{}, id)
}

// RequestID returns the request id, or "" outside an HTTP request.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(contextKeyRequestID{}).(string); ok {
		return id
	}
	return ""
}

// WithClient stores parsed user agent details.
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, contextKeyClient{}, c)
}

// ClientFrom returns the parsed user agent, if the middleware ran.
func ClientFrom(ctx context.Context) (Client, bool) {
	c, ok := ctx.Value(contextKeyClient{}).(Client)
	return c, ok
}
