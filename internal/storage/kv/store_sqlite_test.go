package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"enigma/internal/platform/database"
)

type SQLiteStoreSuite struct {
	contractSuite
}

func TestSQLiteStoreSuite(t *testing.T) {
	s := &SQLiteStoreSuite{}
	s.newStore = func() Store {
		pool, err := database.New(context.Background(), database.Config{
			Driver: database.DriverSQLite,
			URL:    filepath.Join(t.TempDir(), "kv.db"),
		})
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		t.Cleanup(func() { _ = pool.Close() })
		if err := pool.Migrate(context.Background()); err != nil {
			t.Fatalf("migrate sqlite: %v", err)
		}
		return NewSQLite(pool.DB())
	}
	suite.Run(t, s)
}
