// Package kv is the persistence boundary: opaque bytes by string key.
//
// Every backend offers read-after-write visibility within one process, which
// lazy lock expiry depends on. Backends do no domain logic; repositories in
// internal/puzzle/store encode records on top of them.
package kv

import (
	"context"
	"strings"
)

// Store gets and sets values by key. Get returns sentinel.ErrNotFound when
// the key has no value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks s when it supports it. Stores without a remote side are
// always reachable.
func Ping(ctx context.Context, s Store) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// escapeKey maps a key onto a single path or column-safe segment.
// "_" is escaped first so the mapping stays reversible.
func escapeKey(key string) string {
	r := strings.NewReplacer("_", "__", ":", "_c", "/", "_s", "\\", "_b")
	return r.Replace(key)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
