package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

// PoolSuite exercises the pool against an on-disk sqlite file.
//
// Justification: sqlite shares the migration files with postgres, so a
// successful Migrate here catches schema drift without a container.
type PoolSuite struct {
	suite.Suite
	pool *Pool
}

func TestPoolSuite(t *testing.T) {
	suite.Run(t, new(PoolSuite))
}

func (s *PoolSuite) SetupTest() {
	path := filepath.Join(s.T().TempDir(), "enigma.db")
	pool, err := New(context.Background(), Config{Driver: DriverSQLite, URL: path})
	s.Require().NoError(err)
	s.pool = pool
}

func (s *PoolSuite) TearDownTest() {
	s.NoError(s.pool.Close())
}

func (s *PoolSuite) TestMigrateIsIdempotent() {
	ctx := context.Background()
	s.Require().NoError(s.pool.Migrate(ctx))
	s.Require().NoError(s.pool.Migrate(ctx))

	var n int
	s.Require().NoError(s.pool.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM kv_store").Scan(&n))
	s.Equal(0, n)
}

func (s *PoolSuite) TestHealth() {
	s.NoError(s.pool.Health(context.Background()))

	var nilPool *Pool
	s.Error(nilPool.Health(context.Background()))
	s.NoError(nilPool.Close())
}

func (s *PoolSuite) TestRejectsEmptyURL() {
	_, err := New(context.Background(), Config{})
	s.Error(err)
}
