package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/resteel-cart/internal/config"
	"github.com/your-org/resteel-cart/internal/domain/cart"
	"github.com/your-org/resteel-cart/internal/domain/catalog"
	"github.com/your-org/resteel-cart/internal/infrastructure/storage"
	"github.com/your-org/resteel-cart/internal/pkg/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCatalog struct {
	warehouses map[uint]*catalog.Warehouse
	products   map[uint]*catalog.Product
	err        error
}

func (f *fakeCatalog) Get(_ context.Context, source catalog.Source, id uint) (catalog.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	switch source {
	case catalog.SourceWarehouse:
		if w, ok := f.warehouses[id]; ok {
			return w, nil
		}
	case catalog.SourceProduct:
		if p, ok := f.products[id]; ok {
			return p, nil
		}
	}
	return nil, catalog.ErrNotFound
}

type fakeQuotes struct {
	items []cart.LineItem
}

func (f *fakeQuotes) GenerateQuote(_ string, items []cart.LineItem, _ cart.Totals) (*bytes.Buffer, error) {
	f.items = items
	return bytes.NewBufferString("%PDF-1.4 fake"), nil
}

type testServer struct {
	config  *config.Config
	handler http.Handler
	storage *storage.Memory
	catalog *fakeCatalog
	quotes  *fakeQuotes
	cookie  *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Name: "Resteel Cart", Environment: "test"},
		Session: config.SessionConfig{
			Secret:     "0123456789abcdef0123456789abcdef",
			CookieName: "cart_session",
			Expiry:     time.Hour,
		},
		Cart: config.CartConfig{StorageKey: "resteel-cart"},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: []string{"https://resteel.example"},
			CORSAllowedMethods: []string{"GET", "POST"},
			CORSAllowedHeaders: []string{"Content-Type"},
		},
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mem := storage.NewMemory()
	cat := &fakeCatalog{
		warehouses: map[uint]*catalog.Warehouse{
			7: {ID: 7, Name: "Hall", Price: "100", Status: "active", TotalArea: "900 m²", Location: "Delft"},
		},
		products: map[uint]*catalog.Product{
			7: {ID: 7, Name: "Rack", Price: "50", Status: "inStock"},
		},
	}
	quotes := &fakeQuotes{}

	srv := NewServer(cfg, logger, Dependencies{
		Sessions: cart.NewSessions(mem, cfg.Cart.StorageKey, logger),
		Catalog:  cat,
		Quotes:   quotes,
	})

	return &testServer{config: cfg, handler: srv.Handler(), storage: mem, catalog: cat, quotes: quotes}
}

func (ts *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if ts.cookie != nil {
		req.AddCookie(ts.cookie)
	}

	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == "cart_session" {
			ts.cookie = c
		}
	}
	return w
}

type cartEnvelope struct {
	Data struct {
		Items []struct {
			ID       string  `json:"id"`
			Quantity int     `json:"quantity"`
			Price    float64 `json:"price"`
		} `json:"items"`
		Totals struct {
			Subtotal  string `json:"subtotal"`
			Tax       string `json:"tax"`
			Shipping  string `json:"shipping"`
			Total     string `json:"total"`
			ItemCount int    `json:"item_count"`
		} `json:"totals"`
	} `json:"data"`
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartEnvelope {
	t.Helper()
	var env cartEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestCartFlow(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/cart/items", `{"source":"warehouse","id":7,"quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, ts.cookie)

	w = ts.do(t, http.MethodPost, "/api/v1/cart/items", `{"source":"product","id":7}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decodeCart(t, w)
	require.Len(t, env.Data.Items, 2)
	assert.Equal(t, "warehouse-7", env.Data.Items[0].ID)
	assert.Equal(t, "product-7", env.Data.Items[1].ID)
	assert.Equal(t, "250.00", env.Data.Totals.Subtotal)
	assert.Equal(t, "20.00", env.Data.Totals.Tax)
	assert.Equal(t, "49.99", env.Data.Totals.Shipping)
	assert.Equal(t, "319.99", env.Data.Totals.Total)
	assert.Equal(t, 3, env.Data.Totals.ItemCount)

	w = ts.do(t, http.MethodGet, "/api/v1/cart/count", "")
	assert.JSONEq(t, `{"message":"Cart count retrieved successfully","data":{"count":3}}`, w.Body.String())
}

func TestCartPersistsUnderSessionKey(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/cart/items", `{"source":"warehouse","id":7,"quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)

	sessionID, err := session.NewManager(ts.config).Verify(ts.cookie.Value)
	require.NoError(t, err)

	raw, err := ts.storage.Load(context.Background(), "resteel-cart:"+sessionID)
	require.NoError(t, err)

	var persisted []map[string]any
	require.NoError(t, json.Unmarshal(raw, &persisted))
	require.Len(t, persisted, 1)
	assert.Equal(t, "warehouse-7", persisted[0]["id"])
	assert.EqualValues(t, 2, persisted[0]["quantity"])

	w = ts.do(t, http.MethodDelete, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, w.Code)

	raw, err = ts.storage.Load(context.Background(), "resteel-cart:"+sessionID)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestUpdateQuantity(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/api/v1/cart/items", `{"source":"warehouse","id":7}`)

	w := ts.do(t, http.MethodPut, "/api/v1/cart/items/warehouse-7", `{"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPut, "/api/v1/cart/items/product-99", `{"quantity":2}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodPut, "/api/v1/cart/items/warehouse-7", `{"quantity":6}`)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeCart(t, w)
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, 6, env.Data.Items[0].Quantity)
	assert.Equal(t, "0.00", env.Data.Totals.Shipping)
}

func TestRemoveItem(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/api/v1/cart/items", `{"source":"warehouse","id":7}`)

	w := ts.do(t, http.MethodDelete, "/api/v1/cart/items/product-7", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/v1/cart/items/warehouse-7", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeCart(t, w).Data.Items)
}

func TestAddToCart_Validation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"unknown source", `{"source":"service","id":7}`, http.StatusBadRequest},
		{"missing id", `{"source":"product"}`, http.StatusBadRequest},
		{"negative quantity", `{"source":"product","id":7,"quantity":-1}`, http.StatusBadRequest},
		{"not in catalog", `{"source":"product","id":404}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/v1/cart/items", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}

func TestAddToCart_CatalogFailure(t *testing.T) {
	ts := newTestServer(t)
	ts.catalog.err = errors.New("connection reset")

	w := ts.do(t, http.MethodPost, "/api/v1/cart/items", `{"source":"product","id":7}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/api/v1/cart/items", `{"source":"warehouse","id":7}`)

	other := &testServer{handler: ts.handler}
	w := other.do(t, http.MethodGet, "/api/v1/cart", "")
	assert.Empty(t, decodeCart(t, w).Data.Items)

	w = ts.do(t, http.MethodGet, "/api/v1/cart", "")
	assert.Len(t, decodeCart(t, w).Data.Items, 1)
}

func TestTamperedSessionCookieStartsNewCart(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/api/v1/cart/items", `{"source":"warehouse","id":7}`)
	original := ts.cookie.Value

	ts.cookie = &http.Cookie{Name: "cart_session", Value: original + "x"}
	w := ts.do(t, http.MethodGet, "/api/v1/cart", "")
	assert.Empty(t, decodeCart(t, w).Data.Items)
	assert.NotEqual(t, original+"x", ts.cookie.Value)
}

func TestGetQuote(t *testing.T) {
	ts := newTestServer(t)
	ts.do(t, http.MethodPost, "/api/v1/cart/items", `{"source":"warehouse","id":7,"quantity":3}`)

	w := ts.do(t, http.MethodGet, "/api/v1/cart/quote", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
	require.Len(t, ts.quotes.items, 1)
	assert.Equal(t, 3, ts.quotes.items[0].Quantity)
}

func TestCatalogLookup(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/catalog/warehouses/7", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_area":"900 m²"`)

	w = ts.do(t, http.MethodGet, "/api/v1/catalog/products/8", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/catalog/products/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMiddlewareHeaders(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/cart", nil)
	req.Header.Set("Origin", "https://resteel.example")
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://resteel.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/ready", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("X-Request-ID", "req-123")
	w = httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}
