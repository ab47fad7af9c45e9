// Package seeder writes initial puzzle content into an empty store and
// optionally keeps the question set in sync with a TOML seed file.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"enigma/internal/puzzle/models"
	"enigma/pkg/platform/middleware/requesttime"
	"enigma/pkg/platform/sentinel"
)

type ConfigStore interface {
	Get(ctx context.Context) (*models.AdminConfig, error)
	Save(ctx context.Context, cfg *models.AdminConfig) error
}

type QuestionStore interface {
	Seeded(ctx context.Context) (bool, error)
	Replace(ctx context.Context, qs models.QuestionSet) error
}

type UserStore interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, u *models.User) error
}

// Seeder populates an empty store from a seed file or the built-in content.
type Seeder struct {
	config    ConfigStore
	questions QuestionStore
	users     UserStore
	logger    *slog.Logger
	path      string
}

type Option func(*Seeder)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Seeder) {
		s.logger = logger
	}
}

// WithFile seeds from a TOML file instead of the built-in content.
func WithFile(path string) Option {
	return func(s *Seeder) {
		s.path = path
	}
}

func New(config ConfigStore, questions QuestionStore, users UserStore, opts ...Option) *Seeder {
	s := &Seeder{
		config:    config,
		questions: questions,
		users:     users,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the content Seed would write.
func (s *Seeder) Load() (*Content, error) {
	if s.path == "" {
		return Defaults(), nil
	}
	return LoadFile(s.path)
}

// SeedIfEmpty writes each of config, questions and users only when that
// part of the store is empty, so restarts never overwrite admin edits.
// It reports whether anything was written.
func (s *Seeder) SeedIfEmpty(ctx context.Context) (bool, error) {
	content, err := s.Load()
	if err != nil {
		return false, err
	}
	seeded := false

	if _, err := s.config.Get(ctx); errors.Is(err, sentinel.ErrNotFound) {
		cfg := content.Config
		if err := s.config.Save(ctx, &cfg); err != nil {
			return seeded, fmt.Errorf("seed config: %w", err)
		}
		seeded = true
		s.logger.InfoContext(ctx, "seeded configuration", "game_state", cfg.GameState)
	} else if err != nil {
		return seeded, fmt.Errorf("read config: %w", err)
	}

	has, err := s.questions.Seeded(ctx)
	if err != nil {
		return seeded, fmt.Errorf("read questions: %w", err)
	}
	if !has {
		if err := s.questions.Replace(ctx, content.Questions); err != nil {
			return seeded, fmt.Errorf("seed questions: %w", err)
		}
		seeded = true
		s.logger.InfoContext(ctx, "seeded questions", "count", len(content.Questions))
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return seeded, fmt.Errorf("count users: %w", err)
	}
	if count == 0 {
		now := requesttime.Now(ctx)
		for _, u := range content.Users {
			if err := s.users.Create(ctx, models.NewUser(u.UUID, u.Name, now)); err != nil {
				return seeded, fmt.Errorf("seed user %s: %w", u.UUID, err)
			}
		}
		seeded = true
		s.logger.InfoContext(ctx, "seeded users", "count", len(content.Users))
	}
	return seeded, nil
}

// ReloadQuestions replaces the stored question set with the file's.
// Participant progress is untouched.
func (s *Seeder) ReloadQuestions(ctx context.Context) error {
	content, err := s.Load()
	if err != nil {
		return err
	}
	if err := s.questions.Replace(ctx, content.Questions); err != nil {
		return fmt.Errorf("replace questions: %w", err)
	}
	s.logger.InfoContext(ctx, "reloaded questions from seed file",
		"path", s.path,
		"count", len(content.Questions),
	)
	return nil
}
