package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-crm-api/internal/middleware"
	"github.com/noah-isme/academy-crm-api/internal/service"
	appErrors "github.com/noah-isme/academy-crm-api/pkg/errors"
	"github.com/noah-isme/academy-crm-api/pkg/response"
)

// PortalHandler exposes the student-facing portal endpoint.
type PortalHandler struct {
	portal *service.PortalService
}

// NewPortalHandler constructs PortalHandler.
func NewPortalHandler(portal *service.PortalService) *PortalHandler {
	return &PortalHandler{portal: portal}
}

// Me godoc
// @Summary Portal view for the acting student
// @Tags Portal
// @Produce json
// @Param X-Student-ID header int false "Acting student id"
// @Success 200 {object} response.Envelope
// @Router /portal/me [get]
func (h *PortalHandler) Me(c *gin.Context) {
	studentID := middleware.StudentID(c)
	if studentID <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "no acting student"))
		return
	}
	view, err := h.portal.View(studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}
