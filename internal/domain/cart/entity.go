// internal/domain/cart/entity.go
package cart

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/resteel-cart/internal/domain/catalog"
)

// LineItem is one row of the cart. It is a snapshot of the catalog record taken
// when the item was first added; later adds only change Quantity.
type LineItem struct {
	ID             string         `json:"id"`
	OriginalID     uint           `json:"originalId"`
	Source         catalog.Source `json:"source"`
	Name           string         `json:"name"`
	Price          float64        `json:"price"`
	Image          *string        `json:"image"`
	InStock        bool           `json:"inStock"`
	Category       string         `json:"category"`
	Specifications string         `json:"specifications,omitempty"`
	Description    string         `json:"description,omitempty"`
	Quantity       int            `json:"quantity"`
	SourceData     catalog.Record `json:"sourceData,omitempty"`
}

// UnmarshalJSON decodes sourceData into the catalog variant named by source
func (li *LineItem) UnmarshalJSON(data []byte) error {
	type Alias LineItem
	aux := struct {
		*Alias
		SourceData json.RawMessage `json:"sourceData,omitempty"`
	}{Alias: (*Alias)(li)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	li.SourceData = nil
	if len(aux.SourceData) == 0 || string(aux.SourceData) == "null" {
		return nil
	}

	switch li.Source {
	case catalog.SourceWarehouse:
		var w catalog.Warehouse
		if err := json.Unmarshal(aux.SourceData, &w); err != nil {
			return fmt.Errorf("invalid warehouse sourceData: %w", err)
		}
		li.SourceData = &w
	case catalog.SourceProduct:
		var p catalog.Product
		if err := json.Unmarshal(aux.SourceData, &p); err != nil {
			return fmt.Errorf("invalid product sourceData: %w", err)
		}
		li.SourceData = &p
	default:
		return fmt.Errorf("unknown line item source %q", li.Source)
	}
	return nil
}

// LineTotal returns price × quantity
func (li LineItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(li.Price).Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Totals represents calculated cart totals
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"` // Sum of all quantities
}
