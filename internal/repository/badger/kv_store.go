package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/vytor/hippomemory/internal/logger"
	"github.com/vytor/hippomemory/internal/repository"
)

const keyPrefix = "kv:"

type kvStore struct {
	db *badger.DB
}

// Open opens (or creates) a badger directory at path.
func Open(path string) (repository.KeyValueStore, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return NewKeyValueStore(db), nil
}

// OpenInMemory opens a badger instance that never touches disk.
func OpenInMemory() (repository.KeyValueStore, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return NewKeyValueStore(db), nil
}

// NewKeyValueStore wraps an open badger database. Close closes it.
func NewKeyValueStore(db *badger.DB) repository.KeyValueStore {
	return &kvStore{db: db}
}

func (s *kvStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return repository.ErrNotFound
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		logger.FromContext(ctx).WithPrefix("kv_badger").Error("failed to read key %s: %v", key, err)
	}
	return value, err
}

func (s *kvStore) Set(ctx context.Context, key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), value)
	})
	if err != nil {
		logger.FromContext(ctx).WithPrefix("kv_badger").Error("failed to write key %s: %v", key, err)
	}
	return err
}

func (s *kvStore) Delete(_ context.Context, key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(keyPrefix + key)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return nil
	})
}

func (s *kvStore) Close() error {
	return s.db.Close()
}
