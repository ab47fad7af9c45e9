package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"enigma/internal/puzzle/models"
	"enigma/internal/storage/kv"
	"enigma/pkg/platform/sentinel"
	ksync "enigma/pkg/platform/sync"
)

// UserStore keeps one document per user plus an ordered id index.
//
// Lock order is user shard, then index. Index holders never take a user
// shard.
type UserStore struct {
	kv      kv.Store
	keys    Keys
	users   *ksync.ShardedMutex
	indexMu sync.Mutex
}

func NewUserStore(store kv.Store, keys Keys) *UserStore {
	return &UserStore{
		kv:    store,
		keys:  keys,
		users: ksync.NewShardedMutex(),
	}
}

// Get returns sentinel.ErrNotFound for unknown ids.
func (s *UserStore) Get(ctx context.Context, uuid string) (*models.User, error) {
	var u models.User
	if err := getJSON(ctx, s.kv, s.keys.User(uuid), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns users in creation order. Index entries whose document has
// gone are skipped.
func (s *UserStore) List(ctx context.Context) ([]*models.User, error) {
	ids, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.Get(ctx, id)
		if errors.Is(err, sentinel.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// Create stores a new user. Taken ids return sentinel.ErrAlreadyExists.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	ids, err := s.index(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(ids, u.UUID) {
		return sentinel.ErrAlreadyExists
	}
	if err := setJSON(ctx, s.kv, s.keys.User(u.UUID), u); err != nil {
		return err
	}
	return setJSON(ctx, s.kv, s.keys.Users(), append(ids, u.UUID))
}

// Delete removes the user and its index entry.
func (s *UserStore) Delete(ctx context.Context, uuid string) error {
	return s.users.WithLock(uuid, func() error {
		s.indexMu.Lock()
		defer s.indexMu.Unlock()

		ids, err := s.index(ctx)
		if err != nil {
			return err
		}
		i := slices.Index(ids, uuid)
		if i < 0 {
			return sentinel.ErrNotFound
		}
		if err := s.kv.Delete(ctx, s.keys.User(uuid)); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return fmt.Errorf("delete user: %w", err)
		}
		return setJSON(ctx, s.kv, s.keys.Users(), slices.Delete(ids, i, i+1))
	})
}

// Update runs a read-modify-write on one user while holding its shard, so
// concurrent attempts by the same user cannot lose a failure count. fn
// reports whether the record changed; unchanged records are not written.
func (s *UserStore) Update(ctx context.Context, uuid string, fn func(u *models.User) (bool, error)) (*models.User, error) {
	var out *models.User
	err := s.users.WithLock(uuid, func() error {
		u, err := s.Get(ctx, uuid)
		if err != nil {
			return err
		}
		changed, err := fn(u)
		if err != nil {
			return err
		}
		if changed {
			if err := setJSON(ctx, s.kv, s.keys.User(uuid), u); err != nil {
				return err
			}
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of indexed users.
func (s *UserStore) Count(ctx context.Context) (int, error) {
	ids, err := s.index(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (s *UserStore) index(ctx context.Context) ([]string, error) {
	var ids []string
	err := getJSON(ctx, s.kv, s.keys.Users(), &ids)
	if errors.Is(err, sentinel.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}
