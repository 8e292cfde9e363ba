// internal/domain/cart/pricing.go
package cart

import "github.com/shopspring/decimal"

var (
	// TaxRate is the flat sales tax applied to the subtotal
	TaxRate = decimal.RequireFromString("0.08")

	// FreeShippingThreshold must be exceeded, not merely reached
	FreeShippingThreshold = decimal.NewFromInt(500)

	// ShippingFee is charged when the subtotal does not exceed the threshold
	ShippingFee = decimal.RequireFromString("49.99")
)

func subtotalOf(items []LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

func taxOf(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate)
}

func shippingOf(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(FreeShippingThreshold) {
		return decimal.Zero
	}
	return ShippingFee
}

func itemCountOf(items []LineItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// CalculateTotals derives subtotal, tax, shipping, total and item count from items
func CalculateTotals(items []LineItem) Totals {
	subtotal := subtotalOf(items)
	tax := taxOf(subtotal)
	shipping := shippingOf(subtotal)

	return Totals{
		Subtotal:  subtotal,
		Tax:       tax,
		Shipping:  shipping,
		Total:     subtotal.Add(tax).Add(shipping),
		ItemCount: itemCountOf(items),
	}
}
