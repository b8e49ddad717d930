package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KeyValueStore.Get for an absent key.
var ErrNotFound = errors.New("record not found")

// KeyValueStore is the durable per-user record store. Values are opaque bytes.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
