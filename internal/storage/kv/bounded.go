package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	dErrors "enigma/pkg/domain-errors"
	"enigma/pkg/platform/sentinel"
)

// Bounded decorates a Store so no call outlives timeout. A deadline hit is
// reported as a CodeTimeout domain error; other backend failures are tagged
// with sentinel.ErrUnavailable so callers never mistake them for a miss.
type Bounded struct {
	next    Store
	timeout time.Duration
	backend string
	metrics *Metrics
	breaker *Breaker
	logger  *slog.Logger
}

// BoundedOption configures Bounded.
type BoundedOption func(*Bounded)

// WithMetrics records per-operation latency and outcome.
func WithMetrics(m *Metrics) BoundedOption {
	return func(b *Bounded) {
		b.metrics = m
	}
}

// WithBreaker fails data operations fast while br is open. Transitions are
// logged to logger.
func WithBreaker(br *Breaker, logger *slog.Logger) BoundedOption {
	return func(b *Bounded) {
		b.breaker = br
		b.logger = logger
	}
}

// NewBounded wraps next. backend labels metrics.
func NewBounded(next Store, backend string, timeout time.Duration, opts ...BoundedOption) *Bounded {
	b := &Bounded{next: next, timeout: timeout, backend: backend}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Bounded) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := b.do(ctx, "get", func(ctx context.Context) error {
		var err error
		out, err = b.next.Get(ctx, key)
		return err
	})
	return out, err
}

func (b *Bounded) Set(ctx context.Context, key string, value []byte) error {
	return b.do(ctx, "set", func(ctx context.Context) error {
		return b.next.Set(ctx, key, value)
	})
}

func (b *Bounded) Delete(ctx context.Context, key string) error {
	return b.do(ctx, "delete", func(ctx context.Context) error {
		return b.next.Delete(ctx, key)
	})
}

// Ping always reaches the backend so an open breaker can recover.
func (b *Bounded) Ping(ctx context.Context) error {
	return b.do(ctx, "ping", func(ctx context.Context) error {
		return Ping(ctx, b.next)
	})
}

// DefaultRecoveryInterval spaces recovery pings while the breaker is open.
const DefaultRecoveryInterval = 2 * time.Second

// Recover pings the backend every interval while the breaker is open, so
// the breaker closes once the backend is back even when nothing checks
// readiness from outside. It returns nil when ctx ends and is a no-op
// without a breaker.
func (b *Bounded) Recover(ctx context.Context, interval time.Duration) error {
	if b.breaker == nil {
		<-ctx.Done()
		return nil
	}
	if interval <= 0 {
		interval = DefaultRecoveryInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if b.breaker.IsOpen() {
				_ = b.Ping(ctx)
			}
		}
	}
}

func (b *Bounded) do(ctx context.Context, op string, fn func(context.Context) error) error {
	if b.breaker != nil && op != "ping" && b.breaker.IsOpen() {
		if b.metrics != nil {
			b.metrics.Operations.WithLabelValues(b.backend, op, "rejected").Inc()
		}
		return fmt.Errorf("%w: %s store circuit open", sentinel.ErrUnavailable, b.backend)
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	err := classify(fn(ctx))
	if b.metrics != nil {
		b.metrics.observe(b.backend, op, outcome(err), time.Since(start))
	}
	b.track(ctx, err)
	return err
}

func (b *Bounded) track(ctx context.Context, err error) {
	if b.breaker == nil || errors.Is(err, context.Canceled) {
		return
	}
	if err == nil || errors.Is(err, sentinel.ErrNotFound) {
		if b.breaker.success() {
			b.setOpen(ctx, false)
		}
		return
	}
	if b.breaker.failure() {
		b.setOpen(ctx, true)
	}
}

func (b *Bounded) setOpen(ctx context.Context, open bool) {
	if b.metrics != nil {
		v := 0.0
		if open {
			v = 1
		}
		b.metrics.CircuitOpen.WithLabelValues(b.backend).Set(v)
	}
	if b.logger == nil {
		return
	}
	if open {
		b.logger.WarnContext(ctx, "store circuit opened", "backend", b.backend)
		return
	}
	b.logger.InfoContext(ctx, "store circuit closed", "backend", b.backend)
}

func classify(err error) error {
	switch {
	case err == nil, errors.Is(err, sentinel.ErrNotFound):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return &dErrors.Error{Code: dErrors.CodeTimeout, Message: "store deadline exceeded", Err: err}
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, sentinel.ErrNotFound):
		return "not_found"
	case dErrors.HasCode(err, dErrors.CodeTimeout):
		return "timeout"
	default:
		return "error"
	}
}

var _ Store = (*Bounded)(nil)
