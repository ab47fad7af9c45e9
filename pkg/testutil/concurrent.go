// Package testutil holds helpers shared by store and engine tests.
package testutil

import (
	"errors"
	"sync"
	"sync/atomic"

	"enigma/pkg/platform/sentinel"
)

// ConcurrentResult buckets the outcomes of one RunConcurrent call.
type ConcurrentResult struct {
	Successes int32
	NotFounds int32
	Conflicts int32
	Errors    int32
}

func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.NotFounds + r.Conflicts + r.Errors
}

// RunConcurrent starts n goroutines, releases them together, and classifies
// each returned error by store sentinel.
func RunConcurrent(n int, fn func(idx int) error) *ConcurrentResult {
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		res   [4]atomic.Int32
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			res[bucket(fn(i))].Add(1)
		}()
	}
	close(start)
	wg.Wait()

	return &ConcurrentResult{
		Successes: res[0].Load(),
		NotFounds: res[1].Load(),
		Conflicts: res[2].Load(),
		Errors:    res[3].Load(),
	}
}

func bucket(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, sentinel.ErrNotFound):
		return 1
	case errors.Is(err, sentinel.ErrAlreadyExists):
		return 2
	default:
		return 3
	}
}
