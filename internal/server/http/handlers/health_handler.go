package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/pharmanet/internal/server/http/dto"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	facade HealthFacade
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(facade HealthFacade) *HealthHandler {
	return &HealthHandler{facade: facade}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.facade.HealthCheck(c.Request.Context()); err != nil {
		_ = c.Error(err)
		abort(c, http.StatusServiceUnavailable, dto.CodeUnavailable, "storage unavailable", nil)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}
