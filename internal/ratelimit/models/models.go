package models

import (
	"time"

	dErrors "enigma/pkg/domain-errors"
)

// Channel is one of the two independently tracked failure tracks.
type Channel string

const (
	ChannelAnswer Channel = "answer"
	ChannelHint   Channel = "hint"
)

func (c Channel) IsValid() bool {
	return c == ChannelAnswer || c == ChannelHint
}

// Target selects the channels an admin reset clears.
type Target string

const (
	TargetAnswer Target = "answer"
	TargetHint   Target = "hint"
	TargetBoth   Target = "both"
)

// ParseTarget validates an admin supplied reset target. "hint-password" is
// accepted as a synonym for hint.
func ParseTarget(s string) (Target, error) {
	t := Target(s)
	switch t {
	case "hint-password":
		return TargetHint, nil
	case TargetAnswer, TargetHint, TargetBoth:
		return t, nil
	case "":
		return "", dErrors.New(dErrors.CodeValidation, "type is required")
	}
	return "", dErrors.New(dErrors.CodeValidation, "type must be 'answer', 'hint' or 'both'")
}

// Status is the outcome of a check or a recorded failure. Being locked is a
// normal result, not an error.
type Status struct {
	Locked           bool `json:"locked"`
	RemainingSeconds int  `json:"remainingSeconds,omitempty"`
}

// State is the per-user lockout record embedded in the user document.
//
// A channel is locked iff its LockedUntil is set and strictly after now.
// All transitions take now explicitly; nothing here reads the wall clock.
type State struct {
	AnswerFailures      int        `json:"answerFailures"`
	AnswerLockedUntil   *time.Time `json:"answerLockedUntil,omitempty"`
	TotalAnswerFailures int        `json:"totalAnswerFailures"`
	HintFailures        int        `json:"hintFailures"`
	HintLockedUntil     *time.Time `json:"hintLockedUntil,omitempty"`
}

func (s *State) lockedUntil(c Channel) *time.Time {
	if c == ChannelHint {
		return s.HintLockedUntil
	}
	return s.AnswerLockedUntil
}

// Failures returns the consecutive failure count for c.
func (s *State) Failures(c Channel) int {
	if c == ChannelHint {
		return s.HintFailures
	}
	return s.AnswerFailures
}

// Peek reports the lock status of c at now without mutating anything.
// An expired lock reads as unlocked.
func (s *State) Peek(c Channel, now time.Time) Status {
	until := s.lockedUntil(c)
	if until == nil {
		return Status{}
	}
	remaining := RemainingSeconds(*until, now)
	if remaining <= 0 {
		return Status{}
	}
	return Status{Locked: true, RemainingSeconds: remaining}
}

// Expired reports whether c holds a lock whose deadline has passed.
func (s *State) Expired(c Channel, now time.Time) bool {
	until := s.lockedUntil(c)
	return until != nil && !until.After(now)
}

// Evaluate is the check transition. A live lock is returned untouched.
// An expired lock is a reset event: both channels are cleared and changed
// reports that the record must be persisted.
func (s *State) Evaluate(c Channel, now time.Time) (status Status, changed bool) {
	if s.Expired(c, now) {
		s.ClearAll()
		return Status{}, true
	}
	return s.Peek(c, now), false
}

// RecordFailure is the failure transition. It applies lazy expiry first,
// then counts the failure. Reaching maxFailures locks the channel for
// lockFor. A failure that lands while the channel is already locked is
// counted but does not extend the existing deadline.
func (s *State) RecordFailure(c Channel, maxFailures int, lockFor time.Duration, now time.Time) Status {
	s.Evaluate(c, now)

	var failures *int
	var until **time.Time
	if c == ChannelHint {
		failures, until = &s.HintFailures, &s.HintLockedUntil
	} else {
		failures, until = &s.AnswerFailures, &s.AnswerLockedUntil
		s.TotalAnswerFailures++
	}
	*failures++

	if current := s.Peek(c, now); current.Locked {
		return current
	}
	if *failures >= maxFailures {
		deadline := now.Add(lockFor)
		*until = &deadline
		return Status{Locked: true, RemainingSeconds: RemainingSeconds(deadline, now)}
	}
	return Status{}
}

// ClearAll is the success transition: both channels open with zero
// failures. The lifetime answer counter is kept.
func (s *State) ClearAll() {
	s.Clear(TargetBoth)
}

// Clear resets only the channels named by t, with no coupling.
func (s *State) Clear(t Target) {
	if t == TargetAnswer || t == TargetBoth {
		s.AnswerFailures = 0
		s.AnswerLockedUntil = nil
	}
	if t == TargetHint || t == TargetBoth {
		s.HintFailures = 0
		s.HintLockedUntil = nil
	}
}

// RemainingSeconds is ceil((until-now)/1s), floored at zero.
func RemainingSeconds(until, now time.Time) int {
	d := until.Sub(now)
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
