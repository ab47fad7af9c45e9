package models

import (
	"slices"
	"time"

	ratelimit "enigma/internal/ratelimit/config"
	lockout "enigma/internal/ratelimit/models"
)

// Role is the capability resolved from an access UUID.
type Role string

const (
	RoleNone      Role = ""
	RoleAdmin     Role = "admin"
	RoleDashboard Role = "dashboard"
	RoleUser      Role = "user"
)

// GameState gates the participant UI. It does not gate the API.
type GameState string

const (
	GameComingSoon GameState = "coming-soon"
	GameActive     GameState = "active"
)

func (g GameState) IsValid() bool {
	return g == GameComingSoon || g == GameActive
}

// User is one puzzle participant.
type User struct {
	UUID               string        `json:"uuid"`
	Name               string        `json:"name"`
	CurrentQuestion    int           `json:"currentQuestion"`
	CompletedQuestions []string      `json:"completedQuestions"`
	CreatedAt          time.Time     `json:"createdAt"`
	LastActivity       time.Time     `json:"lastActivity"`
	RateLimit          lockout.State `json:"rateLimit"`
}

// NewUser starts a participant at the first question.
func NewUser(uuid, name string, now time.Time) *User {
	return &User{
		UUID:               uuid,
		Name:               name,
		CurrentQuestion:    1,
		CompletedQuestions: []string{},
		CreatedAt:          now,
		LastActivity:       now,
	}
}

// HasCompleted reports whether questionID is in the completed set.
func (u *User) HasCompleted(questionID string) bool {
	return slices.Contains(u.CompletedQuestions, questionID)
}

// Advance records a solved question. The completed set never holds
// duplicates and CurrentQuestion only moves forward.
func (u *User) Advance(questionID string, now time.Time) {
	if !u.HasCompleted(questionID) {
		u.CompletedQuestions = append(u.CompletedQuestions, questionID)
	}
	u.CurrentQuestion++
	u.LastActivity = now
}

// Question is one riddle. Answer and HintPassword never leave the admin API.
type Question struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Answer       string   `json:"answer"`
	Hints        []string `json:"hints,omitempty"`
	HintPassword string   `json:"hintPassword,omitempty"`
	Order        int      `json:"order"`
}

// HasHints reports whether any hints are configured.
func (q *Question) HasHints() bool {
	return len(q.Hints) > 0
}

// RequiresPassword reports whether hints are gated.
func (q *Question) RequiresPassword() bool {
	return q.HintPassword != ""
}

// Safe strips the answer, hints and password.
func (q *Question) Safe() *SafeQuestion {
	if q == nil {
		return nil
	}
	return &SafeQuestion{
		ID:                   q.ID,
		Text:                 q.Text,
		Order:                q.Order,
		HasHints:             q.HasHints(),
		HintsRequirePassword: q.RequiresPassword(),
	}
}

// SafeQuestion is what participants see.
type SafeQuestion struct {
	ID                   string `json:"id"`
	Text                 string `json:"text"`
	Order                int    `json:"order"`
	HasHints             bool   `json:"hasHints"`
	HintsRequirePassword bool   `json:"hintsRequirePassword"`
}

// QuestionSet is the ordered puzzle content.
type QuestionSet []Question

// ByID returns the question with id, or nil.
func (qs QuestionSet) ByID(id string) *Question {
	for i := range qs {
		if qs[i].ID == id {
			return &qs[i]
		}
	}
	return nil
}

// ByOrder returns the question at ordinal order, or nil.
func (qs QuestionSet) ByOrder(order int) *Question {
	for i := range qs {
		if qs[i].Order == order {
			return &qs[i]
		}
	}
	return nil
}

// Sorted returns a copy ordered by Order.
func (qs QuestionSet) Sorted() QuestionSet {
	out := slices.Clone(qs)
	slices.SortFunc(out, func(a, b Question) int { return a.Order - b.Order })
	return out
}

// AdminConfig holds the privileged identities and the game settings.
type AdminConfig struct {
	AdminUUID       string           `json:"adminUuid"`
	DashboardUUID   string           `json:"dashboardUuid"`
	RateLimitConfig ratelimit.Config `json:"rateLimitConfig"`
	GameState       GameState        `json:"gameState"`
}

// Normalized fills defaults for fields older documents may lack.
func (c AdminConfig) Normalized() AdminConfig {
	c.RateLimitConfig = c.RateLimitConfig.OrDefault()
	if !c.GameState.IsValid() {
		c.GameState = GameComingSoon
	}
	return c
}

// HintRoute is a standalone hint page reachable by its own UUID.
type HintRoute struct {
	UUID      string     `json:"uuid"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	IsActive  bool       `json:"isActive"`
}

// Expired reports whether the route's expiry has passed at now.
func (h *HintRoute) Expired(now time.Time) bool {
	return h.ExpiresAt != nil && now.After(*h.ExpiresAt)
}

// Progress summarises how far a participant has got.
type Progress struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ProgressOf computes progress for u against total questions.
func ProgressOf(u *User, total int) Progress {
	return Progress{
		Current:    u.CurrentQuestion,
		Total:      total,
		Percentage: Percentage(len(u.CompletedQuestions), total),
	}
}

// Percentage is round(done/total*100), or 0 with no questions.
func Percentage(done, total int) int {
	if total <= 0 {
		return 0
	}
	return (done*200 + total) / (total * 2)
}
