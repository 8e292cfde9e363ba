package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/resteel-cart/internal/domain/catalog"
)

func TestSnapshot_Warehouse(t *testing.T) {
	w := &catalog.Warehouse{
		ID:          12,
		Name:        "Steel hall A",
		Price:       "2450.75",
		ImagePath:   strPtr("/uploads/hall-a.jpg"),
		Status:      "leased",
		Category:    strPtr("Cold storage"),
		TotalArea:   "3000 m²",
		Location:    "Antwerp",
		Description: strPtr("Insulated hall"),
	}

	item := Snapshot(w, 2)

	assert.Equal(t, "warehouse-12", item.ID)
	assert.Equal(t, uint(12), item.OriginalID)
	assert.Equal(t, catalog.SourceWarehouse, item.Source)
	assert.Equal(t, "Steel hall A", item.Name)
	assert.Equal(t, 2450.75, item.Price)
	assert.Equal(t, "/uploads/hall-a.jpg", *item.Image)
	assert.True(t, item.InStock)
	assert.Equal(t, "Cold storage", item.Category)
	assert.Equal(t, "3000 m² • Antwerp", item.Specifications)
	assert.Equal(t, "Insulated hall", item.Description)
	assert.Equal(t, 2, item.Quantity)
	assert.Same(t, w, item.SourceData)
}

func TestSnapshot_WarehouseDefaults(t *testing.T) {
	w := &catalog.Warehouse{ID: 1, Name: "Hall", Price: "call us", Status: "sold"}

	item := Snapshot(w, 1)

	assert.Equal(t, 0.0, item.Price)
	assert.Equal(t, PlaceholderImage, *item.Image)
	assert.False(t, item.InStock)
	assert.Equal(t, "Warehouse", item.Category)
	assert.Equal(t, " • ", item.Specifications)
	assert.Empty(t, item.Description)
}

func TestSnapshot_ProductStatus(t *testing.T) {
	tests := []struct {
		status  string
		inStock bool
	}{
		{"inStock", true},
		{"outOfStock", false},
		{"active", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			p := &catalog.Product{ID: 1, Name: "Rack", Price: "10", Status: tt.status}
			assert.Equal(t, tt.inStock, Snapshot(p, 1).InStock)
		})
	}
}

func TestSnapshot_Product(t *testing.T) {
	p := &catalog.Product{
		ID:       4,
		Name:     "Mezzanine kit",
		Price:    "899",
		Image:    strPtr("/img/kit.png"),
		Status:   "inStock",
		Features: []string{"Modular", "Load 500 kg/m²", "Stairs included"},
	}

	item := Snapshot(p, 1)

	assert.Equal(t, "product-4", item.ID)
	assert.Equal(t, 899.0, item.Price)
	assert.Equal(t, "/img/kit.png", *item.Image)
	assert.Equal(t, "Product", item.Category)
	assert.Equal(t, "Modular • Load 500 kg/m²", item.Specifications)
}

func TestSnapshot_ProductFeatureFallback(t *testing.T) {
	one := Snapshot(&catalog.Product{ID: 1, Features: []string{"Only one"}}, 1)
	assert.Equal(t, "Only one", one.Specifications)

	none := Snapshot(&catalog.Product{ID: 2, Image: strPtr("")}, 1)
	assert.Equal(t, DefaultProductSpecifications, none.Specifications)
	assert.Equal(t, PlaceholderImage, *none.Image)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"  42.5 ", 42.5},
		{"1250.00 / month", 1250},
		{".5", 0.5},
		{"-3", -3},
		{"1e3", 1000},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"1e999", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseNumber(tt.in))
		})
	}
}
