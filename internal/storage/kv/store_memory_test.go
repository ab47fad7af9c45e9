package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type InMemoryStoreSuite struct {
	contractSuite
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &InMemoryStoreSuite{contractSuite{newStore: func() Store { return NewInMemory() }}})
}

func (s *InMemoryStoreSuite) TestReturnsCopies() {
	mem := NewInMemory()
	in := []byte(`{"name":"Demo User"}`)
	s.Require().NoError(mem.Set(s.ctx, "k", in))
	in[2] = 'X'

	got, err := mem.Get(s.ctx, "k")
	s.Require().NoError(err)
	got[3] = 'Y'

	again, err := mem.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal(`{"name":"Demo User"}`, string(again))
	s.Equal(1, mem.Len())
}

func (s *InMemoryStoreSuite) TestHonoursCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewInMemory().Get(ctx, "k")
	s.ErrorIs(err, context.Canceled)
}
