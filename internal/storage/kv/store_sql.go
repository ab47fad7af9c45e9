package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"enigma/pkg/platform/sentinel"
)

// SQLStore persists values in the kv_store table created by migrations/.
// Postgres and SQLite differ only in placeholder syntax.
type SQLStore struct {
	db        *sql.DB
	getQuery  string
	setQuery  string
	delQuery  string
	backendID string
}

// NewPostgres builds a store over a pgx-backed *sql.DB.
func NewPostgres(db *sql.DB) *SQLStore {
	return &SQLStore{
		db:       db,
		getQuery: `SELECT value FROM kv_store WHERE key = $1`,
		setQuery: `
			INSERT INTO kv_store (key, value, updated_at)
			VALUES ($1, $2, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE SET
				value = EXCLUDED.value,
				updated_at = EXCLUDED.updated_at
		`,
		delQuery:  `DELETE FROM kv_store WHERE key = $1`,
		backendID: "postgres",
	}
}

// NewSQLite builds a store over a modernc sqlite *sql.DB.
func NewSQLite(db *sql.DB) *SQLStore {
	return &SQLStore{
		db:       db,
		getQuery: `SELECT value FROM kv_store WHERE key = ?`,
		setQuery: `
			INSERT INTO kv_store (key, value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE SET
				value = excluded.value,
				updated_at = excluded.updated_at
		`,
		delQuery:  `DELETE FROM kv_store WHERE key = ?`,
		backendID: "sqlite",
	}
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s get %s: %w", s.backendID, key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.setQuery, key, value); err != nil {
		return fmt.Errorf("%s set %s: %w", s.backendID, key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.delQuery, key); err != nil {
		return fmt.Errorf("%s delete %s: %w", s.backendID, key, err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
