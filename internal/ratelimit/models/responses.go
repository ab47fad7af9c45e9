package models

import "time"

// ResetResponse confirms an admin override.
type ResetResponse struct {
	UserUUID string `json:"userUuid"`
	Type     Target `json:"type"`
	Message  string `json:"message"`
}

// UserLockView is one row of the admin rate limit listing.
type UserLockView struct {
	UUID         string     `json:"uuid"`
	Name         string     `json:"name"`
	RateLimit    State      `json:"rateLimit"`
	Answer       Status     `json:"answerStatus"`
	Hint         Status     `json:"hintStatus"`
	LastActivity *time.Time `json:"lastActivity,omitempty"`
}
