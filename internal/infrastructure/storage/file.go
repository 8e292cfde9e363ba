// internal/infrastructure/storage/file.go
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/your-org/resteel-cart/internal/domain/cart"
)

// File stores each cart as one JSON file in a directory
type File struct {
	dir string
}

// NewFile creates the directory if needed
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cart storage directory: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	// Keys contain ':' and arbitrary session ids
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

// Load implements cart.Storage
func (f *File) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, cart.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}
	return data, nil
}

// Save implements cart.Storage. The file is replaced atomically.
func (f *File) Save(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, ".cart-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cart file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cart file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("failed to replace cart file: %w", err)
	}
	return nil
}
