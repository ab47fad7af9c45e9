package admin

import (
	"time"

	puzzle "enigma/internal/puzzle/models"
	"enigma/internal/ratelimit/models"
)

func lockView(u *puzzle.User, now time.Time) models.UserLockView {
	v := models.UserLockView{
		UUID:      u.UUID,
		Name:      u.Name,
		RateLimit: u.RateLimit,
		Answer:    u.RateLimit.Peek(models.ChannelAnswer, now),
		Hint:      u.RateLimit.Peek(models.ChannelHint, now),
	}
	if !u.LastActivity.IsZero() {
		last := u.LastActivity
		v.LastActivity = &last
	}
	return v
}
