package store

import (
	"context"
	"errors"

	"enigma/internal/puzzle/models"
	"enigma/internal/storage/kv"
	"enigma/pkg/platform/sentinel"
)

// QuestionStore holds the ordered question set as one document.
type QuestionStore struct {
	kv   kv.Store
	keys Keys
}

func NewQuestionStore(store kv.Store, keys Keys) *QuestionStore {
	return &QuestionStore{kv: store, keys: keys}
}

// List returns the questions sorted by order. An unseeded store yields an
// empty set.
func (s *QuestionStore) List(ctx context.Context) (models.QuestionSet, error) {
	var qs models.QuestionSet
	err := getJSON(ctx, s.kv, s.keys.Questions(), &qs)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.QuestionSet{}, nil
	}
	if err != nil {
		return nil, err
	}
	return qs.Sorted(), nil
}

// Replace overwrites the whole set.
func (s *QuestionStore) Replace(ctx context.Context, qs models.QuestionSet) error {
	return setJSON(ctx, s.kv, s.keys.Questions(), qs.Sorted())
}

// Seeded reports whether a question set has ever been written.
func (s *QuestionStore) Seeded(ctx context.Context) (bool, error) {
	_, err := s.kv.Get(ctx, s.keys.Questions())
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
