// internal/infrastructure/database/postgres/cart_storage.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/resteel-cart/internal/domain/cart"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRecord is one serialized cart keyed by its storage key
type CartRecord struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"index"`
}

// TableName overrides the table name
func (CartRecord) TableName() string {
	return "cart_storage"
}

// CartStorage keeps serialized carts in the cart_storage table
type CartStorage struct {
	db *gorm.DB
}

// NewCartStorage creates a Postgres-backed cart storage
func NewCartStorage(db *gorm.DB) *CartStorage {
	return &CartStorage{
		db: db,
	}
}

// Load implements cart.Storage
func (s *CartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var record CartRecord
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, cart.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart %s: %w", key, err)
	}
	return []byte(record.Value), nil
}

// Save implements cart.Storage
func (s *CartStorage) Save(ctx context.Context, key string, value []byte) error {
	record := CartRecord{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to write cart %s: %w", key, err)
	}
	return nil
}
