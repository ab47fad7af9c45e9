package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"enigma/internal/ratelimit/models"
)

// Reset reasons.
const (
	ReasonSuccess = "success"
	ReasonExpiry  = "expiry"
	ReasonAdmin   = "admin"
)

type Metrics struct {
	FailuresRecorded     *prometheus.CounterVec
	LockoutsTotal        *prometheus.CounterVec
	RejectedWhileLocked  *prometheus.CounterVec
	ResetsTotal          *prometheus.CounterVec
	LockedUsers          *prometheus.GaugeVec
	GaugeScanRunsTotal   *prometheus.CounterVec
	GaugeScanDurationSec prometheus.Histogram
}

// New registers the rate limit metrics on reg. Tests pass a fresh
// prometheus.NewRegistry so repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FailuresRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enigma_ratelimit_failures_recorded_total",
			Help: "Failed attempts recorded per channel",
		}, []string{"channel"}),
		LockoutsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enigma_ratelimit_lockouts_total",
			Help: "Transitions from open to locked per channel",
		}, []string{"channel"}),
		RejectedWhileLocked: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enigma_ratelimit_rejected_total",
			Help: "Requests short-circuited because the channel was locked",
		}, []string{"channel"}),
		ResetsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enigma_ratelimit_resets_total",
			Help: "Channel resets by reason",
		}, []string{"reason"}),
		LockedUsers: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "enigma_ratelimit_locked_users",
			Help: "Users whose channel is locked as of the last scan",
		}, []string{"channel"}),
		GaugeScanRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enigma_ratelimit_gauge_scan_runs_total",
			Help: "Lock gauge scans by status",
		}, []string{"status"}),
		GaugeScanDurationSec: f.NewHistogram(prometheus.HistogramOpts{
			Name: "enigma_ratelimit_gauge_scan_duration_seconds",
			Help: "Duration of lock gauge scans",
		}),
	}
}

func (m *Metrics) IncrementFailures(c models.Channel) {
	m.FailuresRecorded.WithLabelValues(string(c)).Inc()
}

func (m *Metrics) IncrementLockouts(c models.Channel) {
	m.LockoutsTotal.WithLabelValues(string(c)).Inc()
}

func (m *Metrics) IncrementRejected(c models.Channel) {
	m.RejectedWhileLocked.WithLabelValues(string(c)).Inc()
}

func (m *Metrics) IncrementResets(reason string) {
	m.ResetsTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) SetLockedUsers(c models.Channel, count int) {
	m.LockedUsers.WithLabelValues(string(c)).Set(float64(count))
}

func (m *Metrics) IncrementScanRuns(status string) {
	m.GaugeScanRunsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveScanDuration(d time.Duration) {
	m.GaugeScanDurationSec.Observe(d.Seconds())
}
