// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a catalog record does not exist
var ErrNotFound = errors.New("catalog record not found")

// Service provides read-only access to warehouses and products
type Service struct {
	db *gorm.DB
}

// NewService creates a new catalog service
func NewService(db *gorm.DB) *Service {
	return &Service{
		db: db,
	}
}

// GetWarehouse retrieves a warehouse by ID
func (s *Service) GetWarehouse(ctx context.Context, id uint) (*Warehouse, error) {
	var w Warehouse
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve warehouse %d: %w", id, err)
	}
	return &w, nil
}

// GetProduct retrieves a product by ID
func (s *Service) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var p Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product %d: %w", id, err)
	}
	return &p, nil
}

// Get retrieves a record from the catalog named by source
func (s *Service) Get(ctx context.Context, source Source, id uint) (Record, error) {
	switch source {
	case SourceWarehouse:
		w, err := s.GetWarehouse(ctx, id)
		if err != nil {
			return nil, err
		}
		return w, nil
	case SourceProduct:
		p, err := s.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", source)
	}
}
