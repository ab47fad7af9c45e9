// Package lockgauge periodically counts locked users for the
// enigma_ratelimit_locked_users gauge.
//
// The scan is read-only. It never clears an expired lock: lazy expiry on
// the next check stays the only way a lock is released.
package lockgauge

import (
	"context"
	"log/slog"
	"time"

	puzzle "enigma/internal/puzzle/models"
	"enigma/internal/ratelimit/metrics"
	"enigma/internal/ratelimit/models"
)

// ScanResult is the outcome of one scan.
type ScanResult struct {
	Users        int
	AnswerLocked int
	HintLocked   int
	Duration     time.Duration
}

type UserLister interface {
	List(ctx context.Context) ([]*puzzle.User, error)
}

type Option func(*Worker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func WithInterval(interval time.Duration) Option {
	return func(w *Worker) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Worker) {
		w.metrics = m
	}
}

// WithClock replaces time.Now for tests.
func WithClock(now func() time.Time) Option {
	return func(w *Worker) {
		if now != nil {
			w.now = now
		}
	}
}

type Worker struct {
	users    UserLister
	logger   *slog.Logger
	interval time.Duration
	metrics  *metrics.Metrics
	now      func() time.Time
}

func New(users UserLister, opts ...Option) *Worker {
	w := &Worker{
		users:    users,
		logger:   slog.Default(),
		interval: 30 * time.Second,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start scans once immediately and then every interval until ctx ends.
func (w *Worker) Start(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.tick(ctx)
	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			w.logger.Info("lock gauge worker stopping", "reason", ctx.Err())
			return ctx.Err()
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	res, err := w.RunOnce(ctx)
	if err != nil {
		w.logger.Error("lock_gauge_scan_failed", "error", err)
		if w.metrics != nil {
			w.metrics.IncrementScanRuns("error")
		}
		return
	}
	w.logger.Debug("lock_gauge_scan_completed",
		"users", res.Users,
		"answer_locked", res.AnswerLocked,
		"hint_locked", res.HintLocked,
		"duration_ms", res.Duration.Milliseconds(),
	)
}

// RunOnce performs a single scan and updates the gauges.
func (w *Worker) RunOnce(ctx context.Context) (*ScanResult, error) {
	start := time.Now()
	users, err := w.users.List(ctx)
	if err != nil {
		return nil, err
	}

	now := w.now()
	res := &ScanResult{Users: len(users)}
	for _, u := range users {
		if u.RateLimit.Peek(models.ChannelAnswer, now).Locked {
			res.AnswerLocked++
		}
		if u.RateLimit.Peek(models.ChannelHint, now).Locked {
			res.HintLocked++
		}
	}
	res.Duration = time.Since(start)

	if w.metrics != nil {
		w.metrics.SetLockedUsers(models.ChannelAnswer, res.AnswerLocked)
		w.metrics.SetLockedUsers(models.ChannelHint, res.HintLocked)
		w.metrics.IncrementScanRuns("success")
		w.metrics.ObserveScanDuration(res.Duration)
	}
	return res, nil
}
