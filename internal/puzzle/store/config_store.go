package store

import (
	"context"

	"enigma/internal/puzzle/models"
	"enigma/internal/storage/kv"
)

// ConfigStore holds the single AdminConfig document.
type ConfigStore struct {
	kv   kv.Store
	keys Keys
}

func NewConfigStore(store kv.Store, keys Keys) *ConfigStore {
	return &ConfigStore{kv: store, keys: keys}
}

// Get returns sentinel.ErrNotFound before the game has been seeded.
func (s *ConfigStore) Get(ctx context.Context) (*models.AdminConfig, error) {
	var cfg models.AdminConfig
	if err := getJSON(ctx, s.kv, s.keys.Config(), &cfg); err != nil {
		return nil, err
	}
	cfg = cfg.Normalized()
	return &cfg, nil
}

func (s *ConfigStore) Save(ctx context.Context, cfg *models.AdminConfig) error {
	return setJSON(ctx, s.kv, s.keys.Config(), cfg)
}
