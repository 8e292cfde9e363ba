// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/resteel-cart/internal/domain/catalog"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log logrus.FieldLogger) *Migration {
	return &Migration{
		db:  db,
		log: log,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("🔄 Running database auto-migrations...")

	models := []interface{}{
		// Catalog domain (owned by the catalog collaborators, read here)
		&catalog.Warehouse{},
		&catalog.Product{},

		// Cart persistence
		&CartRecord{},
	}

	for _, model := range models {
		m.log.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.log.Info("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_warehouses_status_category ON warehouses(status, category)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_cart_storage_updated_at ON cart_storage(updated_at DESC)",
	}

	failCount := 0
	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.log.WithError(err).Warn("⚠️ Failed to create index")
			failCount++
		}
	}

	m.log.Infof("✅ Created %d indexes successfully (%d failed)", len(indexes)-failCount, failCount)
	return nil
}

// SeedInitialData inserts a small development catalog
func (m *Migration) SeedInitialData() error {
	m.log.Info("🌱 Seeding initial data...")

	if err := m.seedWarehouses(); err != nil {
		return fmt.Errorf("failed to seed warehouses: %w", err)
	}

	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	m.log.Info("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedWarehouses() error {
	var count int64
	m.db.Model(&catalog.Warehouse{}).Count(&count)
	if count > 0 {
		m.log.Info("⏭️ Warehouses already exist")
		return nil
	}

	coldStorage := "Cold storage"
	description := "Insulated steel hall with two loading docks."

	warehouses := []catalog.Warehouse{
		{
			Name:        "Steel hall Rotterdam-Waalhaven",
			Price:       "2450.00",
			Status:      "active",
			Category:    &coldStorage,
			TotalArea:   "3200 m²",
			Location:    "Rotterdam, NL",
			Description: &description,
		},
		{
			Name:      "Distribution unit Venlo",
			Price:     "1875.50",
			Status:    "leased",
			TotalArea: "1800 m²",
			Location:  "Venlo, NL",
		},
	}

	return m.db.Create(&warehouses).Error
}

func (m *Migration) seedProducts() error {
	var count int64
	m.db.Model(&catalog.Product{}).Count(&count)
	if count > 0 {
		m.log.Info("⏭️ Products already exist")
		return nil
	}

	products := []catalog.Product{
		{
			Name:     "Pallet racking bay",
			Price:    "389.00",
			Status:   "inStock",
			Features: []string{"Galvanised steel", "3 beam levels", "Bolt-free assembly"},
		},
		{
			Name:   "Mezzanine floor kit",
			Price:  "4999",
			Status: "outOfStock",
		},
	}

	return m.db.Create(&products).Error
}

// GetTableInfo logs row counts per table
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		m.log.WithFields(logrus.Fields{
			"table":   table,
			"records": count,
		}).Info("📊 Table")
	}

	return nil
}
