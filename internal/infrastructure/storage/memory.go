// internal/infrastructure/storage/memory.go
package storage

import (
	"context"
	"sync"

	"github.com/your-org/resteel-cart/internal/domain/cart"
)

// Memory is a process-local cart storage. Carts are lost on restart.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory storage
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string][]byte),
	}
}

// Load implements cart.Storage
func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, cart.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Save implements cart.Storage
func (m *Memory) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	return nil
}
