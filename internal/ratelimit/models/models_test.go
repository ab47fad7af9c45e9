package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "enigma/pkg/domain-errors"
)

// StateSuite covers the lockout state machine in isolation.
//
// Justification: every lock decision in the service reduces to these
// transitions, and they take an explicit now so expiry is tested without
// sleeping.
type StateSuite struct {
	suite.Suite
	now time.Time
}

func TestStateSuite(t *testing.T) {
	suite.Run(t, new(StateSuite))
}

func (s *StateSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StateSuite) fail(st *State, c Channel, n int) Status {
	var last Status
	for range n {
		last = st.RecordFailure(c, 3, 10*time.Minute, s.now)
	}
	return last
}

// =============================================================================
// Threshold
// =============================================================================

func (s *StateSuite) TestLocksExactlyAtThreshold() {
	st := &State{}

	s.Run("N-1 failures stay open", func() {
		status := s.fail(st, ChannelAnswer, 2)
		s.False(status.Locked)
		s.False(st.Peek(ChannelAnswer, s.now).Locked)
	})

	s.Run("Nth failure locks for the full window", func() {
		status := s.fail(st, ChannelAnswer, 1)
		s.True(status.Locked)
		s.Equal(600, status.RemainingSeconds)
		s.Require().NotNil(st.AnswerLockedUntil)
		s.Equal(s.now.Add(10*time.Minute), *st.AnswerLockedUntil)
	})

	s.Run("lifetime counter tracks every answer failure", func() {
		s.Equal(3, st.TotalAnswerFailures)
	})
}

func (s *StateSuite) TestChannelsAreIndependent() {
	st := &State{}
	s.fail(st, ChannelHint, 3)

	s.True(st.Peek(ChannelHint, s.now).Locked)
	s.False(st.Peek(ChannelAnswer, s.now).Locked)
	s.Equal(0, st.AnswerFailures)
	s.Equal(0, st.TotalAnswerFailures, "hint failures are not answer failures")
}

func (s *StateSuite) TestFailureWhileLockedDoesNotExtend() {
	st := &State{}
	s.fail(st, ChannelAnswer, 3)
	deadline := *st.AnswerLockedUntil

	later := s.now.Add(time.Minute)
	status := st.RecordFailure(ChannelAnswer, 3, 10*time.Minute, later)
	s.True(status.Locked)
	s.Equal(540, status.RemainingSeconds)
	s.Equal(deadline, *st.AnswerLockedUntil)
	s.Equal(4, st.AnswerFailures)
}

// =============================================================================
// Remaining time
// =============================================================================

func (s *StateSuite) TestRemainingSecondsCountsDownToZero() {
	st := &State{}
	s.fail(st, ChannelAnswer, 3)
	deadline := *st.AnswerLockedUntil

	prev := 601
	for t := s.now; t.Before(deadline); t = t.Add(7 * time.Second) {
		status := st.Peek(ChannelAnswer, t)
		s.True(status.Locked)
		s.LessOrEqual(status.RemainingSeconds, prev)
		prev = status.RemainingSeconds
	}

	s.Equal(1, st.Peek(ChannelAnswer, deadline.Add(-time.Millisecond)).RemainingSeconds, "partial seconds round up")
	s.False(st.Peek(ChannelAnswer, deadline).Locked, "locked only while strictly before the deadline")
}

func (s *StateSuite) TestRemainingSeconds() {
	s.Equal(0, RemainingSeconds(s.now, s.now))
	s.Equal(0, RemainingSeconds(s.now.Add(-time.Hour), s.now))
	s.Equal(1, RemainingSeconds(s.now.Add(1), s.now))
	s.Equal(1500, RemainingSeconds(s.now.Add(25*time.Minute), s.now))
}

// =============================================================================
// Lazy expiry and coupling
// =============================================================================

func (s *StateSuite) TestEvaluateLiveLockIsReadOnly() {
	st := &State{}
	s.fail(st, ChannelAnswer, 3)
	st.HintFailures = 2

	status, changed := st.Evaluate(ChannelAnswer, s.now.Add(time.Minute))
	s.True(status.Locked)
	s.False(changed)
	s.Equal(2, st.HintFailures)
}

func (s *StateSuite) TestExpiryClearsBothChannels() {
	s.Run("hint expiry forgives answer failures", func() {
		st := &State{}
		s.fail(st, ChannelHint, 3)
		st.AnswerFailures = 2

		status, changed := st.Evaluate(ChannelHint, s.now.Add(25*time.Minute))
		s.False(status.Locked)
		s.True(changed)
		s.Equal(State{}, *st)
	})

	s.Run("answer expiry forgives hint failures", func() {
		st := &State{}
		s.fail(st, ChannelAnswer, 3)
		st.HintFailures = 1

		_, changed := st.Evaluate(ChannelAnswer, s.now.Add(10*time.Minute))
		s.True(changed)
		s.Equal(0, st.HintFailures)
		s.Nil(st.AnswerLockedUntil)
		s.Equal(3, st.TotalAnswerFailures)
	})

	s.Run("expiry clears the other channel even while it is locked", func() {
		st := &State{}
		s.fail(st, ChannelHint, 3)
		later := s.now.Add(20 * time.Minute)
		for range 3 {
			st.RecordFailure(ChannelAnswer, 3, 10*time.Minute, later)
		}

		_, changed := st.Evaluate(ChannelHint, s.now.Add(25*time.Minute))
		s.True(changed)
		s.False(st.Peek(ChannelAnswer, s.now.Add(25*time.Minute)).Locked)
	})

	s.Run("no lock means nothing to expire", func() {
		st := &State{AnswerFailures: 2}
		_, changed := st.Evaluate(ChannelAnswer, s.now)
		s.False(changed)
		s.Equal(2, st.AnswerFailures)
	})
}

func (s *StateSuite) TestFailureAfterExpiryStartsFresh() {
	st := &State{}
	s.fail(st, ChannelAnswer, 3)

	status := st.RecordFailure(ChannelAnswer, 3, 10*time.Minute, s.now.Add(11*time.Minute))
	s.False(status.Locked)
	s.Equal(1, st.AnswerFailures)
}

// =============================================================================
// Resets
// =============================================================================

func (s *StateSuite) TestClearAll() {
	st := &State{}
	s.fail(st, ChannelAnswer, 3)
	s.fail(st, ChannelHint, 3)

	st.ClearAll()
	s.Equal(State{TotalAnswerFailures: 3}, *st)
}

func (s *StateSuite) TestClearTargetHasNoCoupling() {
	st := &State{}
	s.fail(st, ChannelAnswer, 3)
	s.fail(st, ChannelHint, 3)
	answerDeadline := *st.AnswerLockedUntil

	st.Clear(TargetHint)
	s.False(st.Peek(ChannelHint, s.now).Locked)
	s.Equal(0, st.HintFailures)
	s.True(st.Peek(ChannelAnswer, s.now).Locked)
	s.Equal(answerDeadline, *st.AnswerLockedUntil)
	s.Equal(3, st.AnswerFailures)

	st.Clear(TargetAnswer)
	s.False(st.Peek(ChannelAnswer, s.now).Locked)
}

func (s *StateSuite) TestJSONOmitsAbsentLocks() {
	b, err := json.Marshal(State{AnswerFailures: 1})
	s.Require().NoError(err)
	s.JSONEq(`{"answerFailures":1,"totalAnswerFailures":0,"hintFailures":0}`, string(b))
}

// =============================================================================
// Requests
// =============================================================================

func (s *StateSuite) TestParseTarget() {
	for _, in := range []string{"answer", "hint", "both"} {
		t, err := ParseTarget(in)
		s.NoError(err)
		s.Equal(Target(in), t)
	}
	t, err := ParseTarget("hint-password")
	s.NoError(err)
	s.Equal(TargetHint, t)

	_, err = ParseTarget("all")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *StateSuite) TestResetRequest() {
	s.Run("defaults to both", func() {
		req := &ResetRequest{UserUUID: " user-demo-1234-5678-abcd-efgh "}
		req.Normalize()
		s.NoError(req.Validate())
		s.Equal("both", req.Type)
		s.Equal("user-demo-1234-5678-abcd-efgh", req.UserUUID)
	})

	s.Run("rejects malformed uuid", func() {
		req := &ResetRequest{UserUUID: "x", Type: "hint"}
		s.True(dErrors.HasCode(req.Validate(), dErrors.CodeValidation))
	})

	s.Run("rejects unknown channel", func() {
		req := &ResetRequest{UserUUID: "user-demo-1234-5678-abcd-efgh", Type: "password"}
		req.Normalize()
		s.True(dErrors.HasCode(req.Validate(), dErrors.CodeValidation))
	})
}
