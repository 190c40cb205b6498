package handlers

import (
	"cmp"
	"net/http"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/pharmanet/internal/adapter/pharmacy"
	"github.com/polkiloo/pharmanet/internal/domain/model"
	"github.com/polkiloo/pharmanet/internal/server/http/dto"
)

// RoutingHandler serves the orchestrator API.
type RoutingHandler struct {
	facade OrchestratorFacade
}

// NewRoutingHandler constructs RoutingHandler.
func NewRoutingHandler(facade OrchestratorFacade) *RoutingHandler {
	return &RoutingHandler{facade: facade}
}

// Route handles POST /orders. A pharmacy refusal is relayed byte for byte.
func (h *RoutingHandler) Route(c *gin.Context) {
	var req dto.RoutedOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.facade.RouteOrder(c.Request.Context(), req.Model())
	if err != nil {
		var upstream *pharmacy.UpstreamError
		if errors.As(err, &upstream) {
			c.Data(upstream.StatusCode, upstream.ContentType, upstream.Body)
			c.Abort()
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewRecordResponse(*record))
}

// List handles GET /orders.
func (h *RoutingHandler) List(c *gin.Context) {
	limit, offset, err := page(c)
	if err != nil {
		writeError(c, err)
		return
	}

	records, err := h.facade.Records(c.Request.Context(), model.RecordFilter{
		PharmacyID: c.Query("pharmacy_id"),
		ClientID:   c.Query("client_id"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRecordList(records))
}

// Get handles GET /orders/:external_order_id.
func (h *RoutingHandler) Get(c *gin.Context) {
	record, err := h.facade.Record(c.Request.Context(), c.Param("external_order_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRecordResponse(*record))
}

// Products handles GET /products.
func (h *RoutingHandler) Products(c *gin.Context) {
	inStock, err := queryBool(c, "in_stock_only")
	if err != nil {
		writeError(c, err)
		return
	}
	limit, offset, err := page(c)
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.facade.AllProducts(c.Request.Context(), model.CatalogFilter{
		PharmacyID:  c.Query("pharmacy_id"),
		InStockOnly: inStock,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCatalogPageResponse(result))
}

// Pharmacies handles GET /pharmacies.
func (h *RoutingHandler) Pharmacies(c *gin.Context) {
	pharmacies := slices.Clone(h.facade.Pharmacies())
	slices.SortFunc(pharmacies, func(a, b model.Pharmacy) int { return cmp.Compare(a.ID, b.ID) })
	c.JSON(http.StatusOK, dto.NewPharmacyList(pharmacies))
}
