package kv

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks store round-trips.
type Metrics struct {
	Operations  *prometheus.CounterVec
	Latency     *prometheus.HistogramVec
	CircuitOpen *prometheus.GaugeVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enigma_store_operations_total",
			Help: "Store operations by backend, operation and outcome",
		}, []string{"backend", "op", "outcome"}),
		Latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "enigma_store_operation_duration_seconds",
			Help:    "Store operation latency",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"backend", "op"}),
		CircuitOpen: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "enigma_store_circuit_open",
			Help: "1 while the store circuit breaker is open",
		}, []string{"backend"}),
	}
}

func (m *Metrics) observe(backend, op, outcome string, d time.Duration) {
	m.Operations.WithLabelValues(backend, op, outcome).Inc()
	m.Latency.WithLabelValues(backend, op).Observe(d.Seconds())
}
