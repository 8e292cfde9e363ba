package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Price
	}{
		{"string", `{"price":"12.50"}`, "12.50"},
		{"number", `{"price":12.5}`, "12.5"},
		{"integer", `{"price":900}`, "900"},
		{"null", `{"price":null}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Product
			require.NoError(t, json.Unmarshal([]byte(tt.in), &p))
			assert.Equal(t, tt.want, p.Price)
		})
	}
}

func TestPrice_UnmarshalJSONRejectsObjects(t *testing.T) {
	var p Product
	assert.Error(t, json.Unmarshal([]byte(`{"price":{"amount":1}}`), &p))
}

func TestPrice_Scan(t *testing.T) {
	var p Price
	require.NoError(t, p.Scan([]byte("19.99")))
	assert.Equal(t, Price("19.99"), p)

	require.NoError(t, p.Scan(float64(7.5)))
	assert.Equal(t, Price("7.5"), p)

	assert.Error(t, p.Scan(true))
}

type recordingVisitor struct {
	warehouses []*Warehouse
	products   []*Product
}

func (v *recordingVisitor) VisitWarehouse(w *Warehouse) { v.warehouses = append(v.warehouses, w) }
func (v *recordingVisitor) VisitProduct(p *Product)     { v.products = append(v.products, p) }

func TestRecord_Accept(t *testing.T) {
	w := &Warehouse{ID: 1}
	p := &Product{ID: 2}
	v := &recordingVisitor{}

	for _, r := range []Record{w, p} {
		r.Accept(v)
	}

	assert.Equal(t, []*Warehouse{w}, v.warehouses)
	assert.Equal(t, []*Product{p}, v.products)
	assert.Equal(t, SourceWarehouse, w.Source())
	assert.Equal(t, SourceProduct, p.Source())
	assert.Equal(t, uint(2), p.CatalogID())
}

func TestSource_Valid(t *testing.T) {
	assert.True(t, SourceWarehouse.Valid())
	assert.True(t, SourceProduct.Valid())
	assert.False(t, Source("service").Valid())
}

func TestWarehouse_JSONShape(t *testing.T) {
	raw := `{"id":3,"name":"Hall","price":"100","image_path":null,"status":"active","category":"Industrial","total_area":"500 m²","location":"Ghent","description":null}`

	var w Warehouse
	require.NoError(t, json.Unmarshal([]byte(raw), &w))
	assert.Equal(t, uint(3), w.ID)
	assert.Nil(t, w.ImagePath)
	require.NotNil(t, w.Category)
	assert.Equal(t, "Industrial", *w.Category)
	assert.Equal(t, "500 m²", w.TotalArea)
}
