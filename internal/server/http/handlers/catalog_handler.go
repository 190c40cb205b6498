package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/pharmanet/internal/domain/model"
	"github.com/polkiloo/pharmanet/internal/server/http/dto"
)

// CatalogHandler serves the product catalog of a pharmacy.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// List handles GET /catalog/products.
func (h *CatalogHandler) List(c *gin.Context) {
	since, err := querySince(c)
	if err != nil {
		writeError(c, err)
		return
	}

	products, err := h.facade.Products(c.Request.Context(), model.ProductFilter{
		Query: strings.TrimSpace(c.Query("query")),
		Since: since,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductList(products))
}

// Get handles GET /catalog/products/:code.
func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.facade.Product(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(*product))
}
