package models

import (
	"time"

	lockout "enigma/internal/ratelimit/models"
)

// ValidateResponse never carries the user record.
type ValidateResponse struct {
	Valid bool `json:"valid"`
	Role  Role `json:"role,omitempty"`
}

// AnswerResponse is returned for every accounted answer attempt, including
// rate limited ones.
type AnswerResponse struct {
	Correct           bool          `json:"correct"`
	NextQuestion      *SafeQuestion `json:"nextQuestion,omitempty"`
	Completed         bool          `json:"completed,omitempty"`
	Progress          Progress      `json:"progress"`
	RateLimited       bool          `json:"rateLimited,omitempty"`
	LockTimeRemaining int           `json:"lockTimeRemaining,omitempty"`
}

// HintResponse carries the full hint set or the reason it was withheld.
type HintResponse struct {
	Hints             []string `json:"hints,omitempty"`
	RequiresPassword  bool     `json:"requiresPassword"`
	RateLimited       bool     `json:"rateLimited,omitempty"`
	LockTimeRemaining int      `json:"lockTimeRemaining,omitempty"`
	Error             string   `json:"error,omitempty"`
}

// RateLimitedBy fills the lock fields from a status.
func (r *HintResponse) RateLimitedBy(st lockout.Status) *HintResponse {
	r.RateLimited = st.Locked
	r.LockTimeRemaining = st.RemainingSeconds
	return r
}

// QuestionResponse is the participant's current position.
type QuestionResponse struct {
	Question       *SafeQuestion `json:"question"`
	IsLastQuestion bool          `json:"isLastQuestion"`
	Completed      bool          `json:"completed,omitempty"`
	Progress       Progress      `json:"progress"`
}

// GameStateResponse is public.
type GameStateResponse struct {
	GameState GameState `json:"gameState"`
}

// UserProgress is one dashboard row. UUID and the lock statuses are only
// filled for admins.
type UserProgress struct {
	UUID           string          `json:"uuid,omitempty"`
	Name           string          `json:"name"`
	Percentage     int             `json:"percentage"`
	CompletedCount int             `json:"completedCount"`
	TotalQuestions int             `json:"totalQuestions"`
	LastActivity   time.Time       `json:"lastActivity"`
	AnswerStatus   *lockout.Status `json:"answerStatus,omitempty"`
	HintStatus     *lockout.Status `json:"hintStatus,omitempty"`
}

// DashboardResponse aggregates progress across all participants.
type DashboardResponse struct {
	TotalUsers        int            `json:"totalUsers"`
	AverageCompletion int            `json:"averageCompletion"`
	TotalCompletions  int            `json:"totalCompletions"`
	Users             []UserProgress `json:"users"`
	LastUpdated       time.Time      `json:"lastUpdated"`
}

// PublicHintRoute is all a hint route visitor sees.
type PublicHintRoute struct {
	Content string `json:"content"`
}
