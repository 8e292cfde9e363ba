// internal/infrastructure/database/redis/cart_storage.go
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/resteel-cart/internal/domain/cart"
)

// CartStorage keeps serialized carts as plain Redis strings
type CartStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartStorage creates a cart storage. A zero ttl keeps records forever.
func NewCartStorage(client *redis.Client, ttl time.Duration) *CartStorage {
	return &CartStorage{
		client: client,
		ttl:    ttl,
	}
}

// Load implements cart.Storage
func (s *CartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from Redis: %w", key, err)
	}
	return data, nil
}

// Save implements cart.Storage
func (s *CartStorage) Save(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s to Redis: %w", key, err)
	}
	return nil
}
