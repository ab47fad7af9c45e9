// Package tracing is a thin span API over OpenTelemetry so services do not
// import otel directly.
package tracing

import "context"

// Attribute is a key/value attached to a span.
type Attribute struct {
	Key   string
	Value any
}

func String(k, v string) Attribute    { return Attribute{Key: k, Value: v} }
func Int(k string, v int) Attribute   { return Attribute{Key: k, Value: v} }
func Bool(k string, v bool) Attribute { return Attribute{Key: k, Value: v} }

// Tracer starts spans.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Span is an in-flight operation. End records err when non-nil.
type Span interface {
	End(err error)
	SetAttributes(attrs ...Attribute)
}

// Noop is a tracer that does nothing.
type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) Start(ctx context.Context, _ string, _ ...Attribute) (context.Context, Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error)                  {}
func (noopSpan) SetAttributes(...Attribute) {}

var (
	_ Tracer = Noop{}
	_ Span   = noopSpan{}
)
