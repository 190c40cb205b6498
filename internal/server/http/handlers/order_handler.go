package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/pharmanet/internal/domain/model"
	"github.com/polkiloo/pharmanet/internal/server/http/dto"
)

// OrderHandler manages pharmacy order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Commit handles POST /orders.
func (h *OrderHandler) Commit(c *gin.Context) {
	var req dto.OrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.facade.CommitOrder(c.Request.Context(), req.Model())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewOrderResponse(*order))
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	since, err := querySince(c)
	if err != nil {
		writeError(c, err)
		return
	}
	limit, offset, err := page(c)
	if err != nil {
		writeError(c, err)
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), model.OrderFilter{
		Since:    since,
		ClientID: c.Query("client_id"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderList(orders))
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(*order))
}
