package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Answer outcomes.
const (
	AnswerCorrect     = "correct"
	AnswerIncorrect   = "incorrect"
	AnswerRateLimited = "rate_limited"
)

// Hint outcomes.
const (
	HintRevealed         = "revealed"
	HintPasswordRequired = "password_required"
	HintIncorrect        = "incorrect"
	HintRateLimited      = "rate_limited"
)

type Metrics struct {
	Answers     *prometheus.CounterVec
	Hints       *prometheus.CounterVec
	Completions prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Answers: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enigma_puzzle_answers_total",
			Help: "Answer submissions by outcome",
		}, []string{"outcome"}),
		Hints: f.NewCounterVec(prometheus.CounterOpts{
			Name: "enigma_puzzle_hint_requests_total",
			Help: "Hint requests by outcome",
		}, []string{"outcome"}),
		Completions: f.NewCounter(prometheus.CounterOpts{
			Name: "enigma_puzzle_completions_total",
			Help: "Participants who solved the final question",
		}),
	}
}

func (m *Metrics) IncrementAnswers(outcome string) {
	m.Answers.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementHints(outcome string) {
	m.Hints.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementCompletions() {
	m.Completions.Inc()
}
