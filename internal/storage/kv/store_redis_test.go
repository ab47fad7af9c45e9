package kv

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisStoreSuite struct {
	contractSuite
}

// TestRedisStoreSuite runs against REDIS_TEST_URL when it is set and
// flushes that database between tests.
func TestRedisStoreSuite(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse REDIS_TEST_URL: %v", err)
	}
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	s := &RedisStoreSuite{}
	s.newStore = func() Store {
		if err := client.FlushDB(context.Background()).Err(); err != nil {
			t.Fatalf("flush redis: %v", err)
		}
		return NewRedis(client)
	}
	suite.Run(t, s)
}
