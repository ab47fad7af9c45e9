package config

import (
	"time"

	"enigma/internal/ratelimit/models"
	"enigma/pkg/platform/validation"
)

// Policy bounds one channel: how many consecutive failures lock it and for
// how long.
type Policy struct {
	MaxFailures int `json:"maxFailures" validate:"min=1,max=20"`
	LockMinutes int `json:"lockMinutes" validate:"min=1,max=1440"`
}

// LockDuration converts LockMinutes to a duration.
func (p Policy) LockDuration() time.Duration {
	return time.Duration(p.LockMinutes) * time.Minute
}

// Config holds the two independent channel policies. Admins edit it at
// runtime, so it is stored with the game configuration.
type Config struct {
	Answer       Policy `json:"answer"`
	HintPassword Policy `json:"hintPassword"`
}

// DefaultConfig is used when no configuration has been stored.
func DefaultConfig() Config {
	return Config{
		Answer:       Policy{MaxFailures: 3, LockMinutes: 10},
		HintPassword: Policy{MaxFailures: 3, LockMinutes: 25},
	}
}

// For returns the policy governing c.
func (c Config) For(ch models.Channel) Policy {
	if ch == models.ChannelHint {
		return c.HintPassword
	}
	return c.Answer
}

// Validate rejects values outside [1,20] failures or [1,1440] minutes.
func (c Config) Validate() error {
	return validation.Validate(c)
}

// OrDefault fills a zero-valued policy with its default. Documents written
// before a channel was configured decode as zero.
func (c Config) OrDefault() Config {
	d := DefaultConfig()
	if c.Answer == (Policy{}) {
		c.Answer = d.Answer
	}
	if c.HintPassword == (Policy{}) {
		c.HintPassword = d.HintPassword
	}
	return c
}
