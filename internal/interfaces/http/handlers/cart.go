// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/resteel-cart/internal/domain/cart"
	"github.com/your-org/resteel-cart/internal/domain/catalog"
	"github.com/your-org/resteel-cart/internal/interfaces/http/middleware"
)

// CatalogReader looks up catalog records by source and id
type CatalogReader interface {
	Get(ctx context.Context, source catalog.Source, id uint) (catalog.Record, error)
}

// QuoteGenerator renders a printable quote of a cart
type QuoteGenerator interface {
	GenerateQuote(reference string, items []cart.LineItem, totals cart.Totals) (*bytes.Buffer, error)
}

// CartHandler handles cart endpoints
type CartHandler struct {
	sessions *cart.Sessions
	catalog  CatalogReader
	quotes   QuoteGenerator
	log      logrus.FieldLogger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(sessions *cart.Sessions, catalogReader CatalogReader, quotes QuoteGenerator, logger logrus.FieldLogger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		catalog:  catalogReader,
		quotes:   quotes,
		log:      logger,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	Source   catalog.Source `json:"source" binding:"required,oneof=warehouse product"`
	ID       uint           `json:"id" binding:"required"`
	Quantity int            `json:"quantity" binding:"omitempty,min=1"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// TotalsResponse carries the cart totals formatted to cents
type TotalsResponse struct {
	Subtotal  string `json:"subtotal"`
	Tax       string `json:"tax"`
	Shipping  string `json:"shipping"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
}

// CartResponse represents a shopping cart with items and summary
type CartResponse struct {
	Items  []cart.LineItem `json:"items"`
	Totals TotalsResponse  `json:"totals"`
}

func newCartResponse(store *cart.Store) CartResponse {
	items := store.Items()
	totals := cart.CalculateTotals(items)

	return CartResponse{
		Items: items,
		Totals: TotalsResponse{
			Subtotal:  totals.Subtotal.StringFixed(2),
			Tax:       totals.Tax.StringFixed(2),
			Shipping:  totals.Shipping.StringFixed(2),
			Total:     totals.Total.StringFixed(2),
			ItemCount: totals.ItemCount,
		},
	}
}

func (h *CartHandler) store(c *gin.Context) *cart.Store {
	return h.sessions.Get(c.Request.Context(), middleware.GetSessionID(c))
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    newCartResponse(h.store(c)),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	record, err := h.catalog.Get(c.Request.Context(), req.Source, req.ID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": fmt.Sprintf("%s %d not found", req.Source, req.ID),
			})
			return
		}
		h.log.WithError(err).Error("Catalog lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to look up catalog item",
		})
		return
	}

	store := h.store(c)
	item := store.AddItem(c.Request.Context(), record, req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"item":    item,
		"data":    newCartResponse(store),
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if *req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Quantity must be at least 1",
		})
		return
	}

	store := h.store(c)
	if !store.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Item not found in cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    newCartResponse(store),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	store := h.store(c)
	if !store.RemoveItem(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Item not found in cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    newCartResponse(store),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.store(c).ClearCart(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": h.store(c).ItemCount(),
		},
	})
}

// GetQuote handles GET /cart/quote
func (h *CartHandler) GetQuote(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	store := h.sessions.Get(c.Request.Context(), sessionID)
	items := store.Items()

	reference := sessionID
	if len(reference) > 8 {
		reference = reference[:8]
	}

	buf, err := h.quotes.GenerateQuote(reference, items, cart.CalculateTotals(items))
	if err != nil {
		h.log.WithError(err).Error("Failed to generate cart quote")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate quote",
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=quote-%s.pdf", reference))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
