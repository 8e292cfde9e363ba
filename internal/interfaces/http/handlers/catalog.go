// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/resteel-cart/internal/domain/catalog"
)

// CatalogHandler serves read-only catalog lookups for cart UIs
type CatalogHandler struct {
	catalog CatalogReader
	log     logrus.FieldLogger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogReader CatalogReader, logger logrus.FieldLogger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogReader,
		log:     logger,
	}
}

// GetWarehouse handles GET /catalog/warehouses/:id
func (h *CatalogHandler) GetWarehouse(c *gin.Context) {
	h.get(c, catalog.SourceWarehouse)
}

// GetProduct handles GET /catalog/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	h.get(c, catalog.SourceProduct)
}

func (h *CatalogHandler) get(c *gin.Context, source catalog.Source) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + string(source) + " ID",
		})
		return
	}

	record, err := h.catalog.Get(c.Request.Context(), source, uint(id))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": string(source) + " not found",
			})
			return
		}
		h.log.WithError(err).Error("Catalog lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve " + string(source),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": record,
	})
}
