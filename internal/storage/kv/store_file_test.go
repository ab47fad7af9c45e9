package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type FileStoreSuite struct {
	contractSuite
	dir string
}

func TestFileStoreSuite(t *testing.T) {
	s := &FileStoreSuite{}
	s.newStore = func() Store {
		s.dir = t.TempDir()
		fs, err := NewFile(s.dir)
		if err != nil {
			t.Fatalf("new file store: %v", err)
		}
		return fs
	}
	suite.Run(t, s)
}

func (s *FileStoreSuite) TestFileNamesAreEscaped() {
	s.Require().NoError(s.store.Set(s.ctx, "puzzle:user:user_x", []byte(`{}`)))
	_, err := os.Stat(filepath.Join(s.dir, "puzzle_cuser_cuser__x.json"))
	s.NoError(err)
}

func (s *FileStoreSuite) TestNoTempFilesLeftBehind() {
	s.Require().NoError(s.store.Set(s.ctx, "puzzle:questions", []byte(`[]`)))
	matches, err := filepath.Glob(filepath.Join(s.dir, ".tmp-*"))
	s.Require().NoError(err)
	s.Empty(matches)
}

func (s *FileStoreSuite) TestPingFailsWhenDirRemoved() {
	s.Require().NoError(os.RemoveAll(s.dir))
	s.Error(s.store.(*FileStore).Ping(s.ctx))
}
