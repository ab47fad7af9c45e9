package kv

import (
	"context"
	"fmt"
	"sync"

	"github.com/stretchr/testify/suite"

	"enigma/pkg/platform/sentinel"
)

// contractSuite is the behaviour every backend must share. Backend test
// files embed it and set newStore.
type contractSuite struct {
	suite.Suite
	newStore func() Store
	store    Store
	ctx      context.Context
}

func (s *contractSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore()
}

func (s *contractSuite) TestMissingKeyIsNotFound() {
	_, err := s.store.Get(s.ctx, "puzzle:user:user-missing-0000")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *contractSuite) TestReadAfterWrite() {
	key := "puzzle:user:user-demo-1234-5678-abcd-efgh"
	s.Require().NoError(s.store.Set(s.ctx, key, []byte(`{"currentQuestion":1}`)))

	got, err := s.store.Get(s.ctx, key)
	s.Require().NoError(err)
	s.JSONEq(`{"currentQuestion":1}`, string(got))

	s.Require().NoError(s.store.Set(s.ctx, key, []byte(`{"currentQuestion":2}`)))
	got, err = s.store.Get(s.ctx, key)
	s.Require().NoError(err)
	s.JSONEq(`{"currentQuestion":2}`, string(got))
}

func (s *contractSuite) TestDelete() {
	s.Require().NoError(s.store.Set(s.ctx, "puzzle:config", []byte(`{}`)))
	s.Require().NoError(s.store.Delete(s.ctx, "puzzle:config"))

	_, err := s.store.Get(s.ctx, "puzzle:config")
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.NoError(s.store.Delete(s.ctx, "puzzle:config"), "deleting a missing key is not an error")
}

func (s *contractSuite) TestKeysWithSeparatorsDoNotCollide() {
	s.Require().NoError(s.store.Set(s.ctx, "a:b", []byte(`"colon"`)))
	s.Require().NoError(s.store.Set(s.ctx, "a_cb", []byte(`"escaped"`)))

	got, err := s.store.Get(s.ctx, "a:b")
	s.Require().NoError(err)
	s.Equal(`"colon"`, string(got))
}

func (s *contractSuite) TestConcurrentWritersDistinctKeys() {
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Go(func() {
			s.NoError(s.store.Set(s.ctx, fmt.Sprintf("puzzle:user:user-%04d-load", i), []byte(`{}`)))
		})
	}
	wg.Wait()

	for i := range 20 {
		_, err := s.store.Get(s.ctx, fmt.Sprintf("puzzle:user:user-%04d-load", i))
		s.NoError(err)
	}
}

func (s *contractSuite) TestPing() {
	s.NoError(Ping(s.ctx, s.store))
}
