package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/resteel-cart/internal/config"
	"github.com/your-org/resteel-cart/internal/domain/cart"
	"github.com/your-org/resteel-cart/internal/domain/catalog"
)

func testService() *Service {
	s := NewService(&config.Config{Company: config.CompanyConfig{Name: "Resteel", Phone: "010 000 0000"}})
	s.now = func() time.Time { return time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestRenderQuoteHTML(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(ctx, nil, "quote", nil)
	store.AddItem(ctx, &catalog.Warehouse{ID: 1, Name: "Hall <A>", Price: "100", Status: "active", TotalArea: "900 m²", Location: "Delft"}, 2)
	store.AddItem(ctx, &catalog.Product{ID: 2, Name: "Rack", Price: "50", Status: "inStock"}, 1)

	html, err := testService().RenderQuoteHTML("abc123", store.Items(), store.Totals())
	require.NoError(t, err)

	assert.Contains(t, html, "Q-20260304-abc123")
	assert.Contains(t, html, "Hall &lt;A&gt;")
	assert.Contains(t, html, "900 m² • Delft")
	assert.Contains(t, html, "$200.00")
	assert.Contains(t, html, "$250.00")
	assert.Contains(t, html, "$20.00")
	assert.Contains(t, html, "$49.99")
	assert.Contains(t, html, "$319.99")
	assert.Contains(t, html, "Phone: 010 000 0000")
}

func TestRenderQuoteHTML_EmptyCartFreeShippingLabel(t *testing.T) {
	html, err := testService().RenderQuoteHTML("x", nil, cart.CalculateTotals(nil))
	require.NoError(t, err)
	assert.Contains(t, html, "Your cart is empty.")

	ctx := context.Background()
	store := cart.NewStore(ctx, nil, "quote", nil)
	store.AddItem(ctx, &catalog.Product{ID: 2, Name: "Kit", Price: "600", Status: "inStock"}, 1)

	html, err = testService().RenderQuoteHTML("y", store.Items(), store.Totals())
	require.NoError(t, err)
	assert.Contains(t, html, "Free")
}
