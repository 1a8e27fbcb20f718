package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-crm-api/internal/service"
	"github.com/noah-isme/academy-crm-api/pkg/response"
)

// DashboardHandler exposes the staff dashboard endpoint.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Overview godoc
// @Summary Dashboard overview
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.dashboard.Overview(), nil)
}
