// internal/domain/cart/snapshot.go
package cart

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/your-org/resteel-cart/internal/domain/catalog"
)

const (
	// PlaceholderImage is used when a catalog record has no image
	PlaceholderImage = "/placeholder.svg"

	// DefaultProductSpecifications is shown for products without features
	DefaultProductSpecifications = "Standard specifications"

	specSeparator = " • "
)

// LineItemID builds the composite cart key for a catalog record
func LineItemID(source catalog.Source, originalID uint) string {
	return fmt.Sprintf("%s-%d", source, originalID)
}

// Snapshot flattens a catalog record into a line item with the given quantity
func Snapshot(record catalog.Record, quantity int) LineItem {
	b := &snapshotBuilder{}
	record.Accept(b)
	b.item.ID = LineItemID(record.Source(), record.CatalogID())
	b.item.OriginalID = record.CatalogID()
	b.item.Source = record.Source()
	b.item.Quantity = quantity
	b.item.SourceData = record
	return b.item
}

type snapshotBuilder struct {
	item LineItem
}

func (b *snapshotBuilder) VisitWarehouse(w *catalog.Warehouse) {
	category := "Warehouse"
	if w.Category != nil && *w.Category != "" {
		category = *w.Category
	}

	b.item.Name = w.Name
	b.item.Price = parseNumber(w.Price)
	b.item.Image = imageOrPlaceholder(w.ImagePath)
	b.item.InStock = w.Status == "active" || w.Status == "leased"
	b.item.Category = category
	b.item.Specifications = w.TotalArea + specSeparator + w.Location
	b.item.Description = deref(w.Description)
}

func (b *snapshotBuilder) VisitProduct(p *catalog.Product) {
	specs := DefaultProductSpecifications
	if len(p.Features) > 0 {
		n := len(p.Features)
		if n > 2 {
			n = 2
		}
		specs = strings.Join(p.Features[:n], specSeparator)
	}

	b.item.Name = p.Name
	b.item.Price = parseNumber(string(p.Price))
	b.item.Image = imageOrPlaceholder(p.Image)
	b.item.InStock = p.Status == "inStock"
	b.item.Category = "Product"
	b.item.Specifications = specs
	b.item.Description = deref(p.Description)
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// parseNumber reads the leading decimal number of s, so "1250.00 / month"
// yields 1250. Anything unparseable is 0.
func parseNumber(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func imageOrPlaceholder(image *string) *string {
	if image != nil && *image != "" {
		v := *image
		return &v
	}
	v := PlaceholderImage
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
