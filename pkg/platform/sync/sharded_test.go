package sync

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShardedMutex_SameKeySerializes(t *testing.T) {
	m := NewShardedMutex()
	counter := 0
	var wg sync.WaitGroup

	for range 200 {
		wg.Go(func() {
			m.Lock("user-demo-1234-5678-abcd-efgh")
			defer m.Unlock("user-demo-1234-5678-abcd-efgh")
			counter++
		})
	}
	wg.Wait()

	assert.Equal(t, 200, counter)
}

func TestShardedMutex_EmptyKey(t *testing.T) {
	m := NewShardedMutex()
	m.Lock("")
	m.Unlock("")
	assert.Equal(t, 0, m.shardFor(""))
}

func TestShardedMutex_WithLockReturnsError(t *testing.T) {
	m := NewShardedMutex()
	want := errors.New("write failed")
	assert.ErrorIs(t, m.WithLock("k", func() error { return want }), want)

	// lock must be released after fn returns
	m.Lock("k")
	m.Unlock("k")
}

func TestShardedMutex_Distribution(t *testing.T) {
	m := NewShardedMutex()
	shards := make(map[int]bool)
	for _, key := range []string{"user-a", "user-b", "user-c", "user-d", "user-e", "user-f", "user-g", "user-h"} {
		shards[m.shardFor(key)] = true
	}
	assert.GreaterOrEqual(t, len(shards), 3)
}
