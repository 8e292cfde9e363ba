// internal/domain/cart/storage.go
package cart

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by a Storage when nothing is stored under a key
var ErrKeyNotFound = errors.New("storage key not found")

// Storage is a durable key/value slot holding the serialized cart.
// A nil Storage means the environment has no durable storage.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}
