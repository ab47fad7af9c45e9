package store

import (
	"context"
	"errors"
	"slices"
	"sync"

	"enigma/internal/puzzle/models"
	"enigma/internal/storage/kv"
	"enigma/pkg/platform/sentinel"
)

// HintRouteStore holds all hint routes as one document.
type HintRouteStore struct {
	kv   kv.Store
	keys Keys
	mu   sync.Mutex
}

func NewHintRouteStore(store kv.Store, keys Keys) *HintRouteStore {
	return &HintRouteStore{kv: store, keys: keys}
}

func (s *HintRouteStore) List(ctx context.Context) ([]models.HintRoute, error) {
	var routes []models.HintRoute
	err := getJSON(ctx, s.kv, s.keys.HintRoutes(), &routes)
	if errors.Is(err, sentinel.ErrNotFound) {
		return []models.HintRoute{}, nil
	}
	if err != nil {
		return nil, err
	}
	return routes, nil
}

// Get returns sentinel.ErrNotFound for unknown ids.
func (s *HintRouteStore) Get(ctx context.Context, uuid string) (*models.HintRoute, error) {
	routes, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range routes {
		if routes[i].UUID == uuid {
			return &routes[i], nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *HintRouteStore) Add(ctx context.Context, route models.HintRoute) error {
	return s.mutate(ctx, func(routes []models.HintRoute) ([]models.HintRoute, error) {
		if slices.ContainsFunc(routes, func(r models.HintRoute) bool { return r.UUID == route.UUID }) {
			return nil, sentinel.ErrAlreadyExists
		}
		return append(routes, route), nil
	})
}

// Update applies fn to the route with uuid and returns the stored result.
func (s *HintRouteStore) Update(ctx context.Context, uuid string, fn func(r *models.HintRoute)) (*models.HintRoute, error) {
	var out models.HintRoute
	err := s.mutate(ctx, func(routes []models.HintRoute) ([]models.HintRoute, error) {
		i := slices.IndexFunc(routes, func(r models.HintRoute) bool { return r.UUID == uuid })
		if i < 0 {
			return nil, sentinel.ErrNotFound
		}
		fn(&routes[i])
		out = routes[i]
		return routes, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *HintRouteStore) Remove(ctx context.Context, uuid string) error {
	return s.mutate(ctx, func(routes []models.HintRoute) ([]models.HintRoute, error) {
		i := slices.IndexFunc(routes, func(r models.HintRoute) bool { return r.UUID == uuid })
		if i < 0 {
			return nil, sentinel.ErrNotFound
		}
		return slices.Delete(routes, i, i+1), nil
	})
}

func (s *HintRouteStore) mutate(ctx context.Context, fn func([]models.HintRoute) ([]models.HintRoute, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	routes, err := s.List(ctx)
	if err != nil {
		return err
	}
	next, err := fn(routes)
	if err != nil {
		return err
	}
	return setJSON(ctx, s.kv, s.keys.HintRoutes(), next)
}
