// Package store persists puzzle records as JSON documents over kv.Store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"enigma/internal/storage/kv"
	"enigma/pkg/platform/sentinel"
)

// DefaultPrefix namespaces every key written by the repositories.
const DefaultPrefix = "puzzle"

// Keys builds the key layout under one prefix.
type Keys struct {
	prefix string
}

func NewKeys(prefix string) Keys {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Keys{prefix: prefix}
}

func (k Keys) Config() string          { return k.prefix + ":config" }
func (k Keys) Questions() string       { return k.prefix + ":questions" }
func (k Keys) Users() string           { return k.prefix + ":users" }
func (k Keys) User(uuid string) string { return k.prefix + ":user:" + uuid }
func (k Keys) HintRoutes() string      { return k.prefix + ":hint-routes" }

// getJSON decodes the value at key into dst. Absent keys return
// sentinel.ErrNotFound untouched so callers can pick a default.
func getJSON(ctx context.Context, s kv.Store, key string, dst any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return sentinel.ErrNotFound
		}
		return fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func setJSON(ctx context.Context, s kv.Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
