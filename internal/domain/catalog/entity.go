// internal/domain/catalog/entity.go
package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Source tags which catalog a record came from
type Source string

const (
	SourceWarehouse Source = "warehouse"
	SourceProduct   Source = "product"
)

// Valid reports whether s names a known catalog
func (s Source) Valid() bool {
	return s == SourceWarehouse || s == SourceProduct
}

// Record is a read-only catalog entry. Only *Warehouse and *Product implement it.
type Record interface {
	Source() Source
	CatalogID() uint
	Accept(v RecordVisitor)
	isRecord()
}

// RecordVisitor receives the concrete variant of a Record. A new catalog type
// adds a method here, which every visitor then has to implement.
type RecordVisitor interface {
	VisitWarehouse(w *Warehouse)
	VisitProduct(p *Product)
}

// Warehouse is a leased or for-sale warehouse listing
type Warehouse struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Price       string    `gorm:"not null;default:'0'" json:"price"` // numeric text
	ImagePath   *string   `json:"image_path"`
	Status      string    `gorm:"not null;index" json:"status"`
	Category    *string   `json:"category"`
	TotalArea   string    `json:"total_area"`
	Location    string    `json:"location"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName overrides the table name
func (Warehouse) TableName() string {
	return "warehouses"
}

func (w *Warehouse) Source() Source         { return SourceWarehouse }
func (w *Warehouse) CatalogID() uint        { return w.ID }
func (w *Warehouse) Accept(v RecordVisitor) { v.VisitWarehouse(w) }
func (w *Warehouse) isRecord()              {}

// Product is a webshop product
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Price       Price     `gorm:"not null;default:'0'" json:"price"`
	Image       *string   `json:"image"`
	Status      string    `gorm:"not null;index" json:"status"`
	Features    []string  `gorm:"serializer:json" json:"features"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

func (p *Product) Source() Source         { return SourceProduct }
func (p *Product) CatalogID() uint        { return p.ID }
func (p *Product) Accept(v RecordVisitor) { v.VisitProduct(p) }
func (p *Product) isRecord()              {}

// Price holds a product price that arrives either as a JSON string or a JSON number.
type Price string

// UnmarshalJSON accepts "12.50", 12.5 and null
func (p *Price) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Price(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price must be a string or a number: %w", err)
	}
	*p = Price(n.String())
	return nil
}

// Scan implements sql.Scanner
func (p *Price) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = ""
	case string:
		*p = Price(v)
	case []byte:
		*p = Price(v)
	case float64:
		*p = Price(strconv.FormatFloat(v, 'f', -1, 64))
	case int64:
		*p = Price(strconv.FormatInt(v, 10))
	default:
		return fmt.Errorf("unsupported price type %T", value)
	}
	return nil
}

// Value implements driver.Valuer
func (p Price) Value() (driver.Value, error) {
	return string(p), nil
}
