package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/hippomemory/internal/logger"
	"github.com/vytor/hippomemory/internal/repository"
)

const kvTable = "kv_records"

type kvStore struct {
	db *sql.DB
}

// NewKeyValueStore creates a KeyValueStore over the kv_records table.
func NewKeyValueStore(db *sql.DB) repository.KeyValueStore {
	return &kvStore{db: db}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_sqlite")

	query, args, err := sqlBuilder.Select("value").From(kvTable).Where("key = ?", key).ToSql()
	if err != nil {
		return nil, err
	}

	var value []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("key %s not found", key)
		return nil, repository.ErrNotFound
	}
	if err != nil {
		log.Error("failed to read key %s: %v", key, err)
		return nil, err
	}
	return value, nil
}

func (s *kvStore) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx).WithPrefix("kv_sqlite")

	query, args, err := sqlBuilder.Insert(kvTable).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return err
	}

	return tx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			log.Error("failed to write key %s: %v", key, err)
			return err
		}
		log.Debug("wrote key %s (%d bytes)", key, len(value))
		return nil
	})
}

func (s *kvStore) Delete(ctx context.Context, key string) error {
	query, args, err := sqlBuilder.Delete(kvTable).Where("key = ?", key).ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *kvStore) Close() error {
	return s.db.Close()
}
