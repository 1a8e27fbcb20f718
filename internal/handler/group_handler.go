package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-crm-api/internal/service"
	appErrors "github.com/noah-isme/academy-crm-api/pkg/errors"
	"github.com/noah-isme/academy-crm-api/pkg/response"
)

// GroupHandler exposes training group endpoints.
type GroupHandler struct {
	groups  *service.GroupService
	metrics *service.MetricsService
}

// NewGroupHandler constructs GroupHandler.
func NewGroupHandler(groups *service.GroupService, metrics *service.MetricsService) *GroupHandler {
	return &GroupHandler{groups: groups, metrics: metrics}
}

// List godoc
// @Summary List groups with member counts
// @Tags Groups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /groups [get]
func (h *GroupHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.groups.List(), nil)
}

// Get godoc
// @Summary Get group detail with member records
// @Tags Groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Envelope
// @Router /groups/{id} [get]
func (h *GroupHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := h.groups.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Create godoc
// @Summary Add group
// @Tags Groups
// @Accept json
// @Produce json
// @Param payload body service.CreateGroupRequest true "Group payload"
// @Success 201 {object} response.Envelope
// @Router /groups [post]
func (h *GroupHandler) Create(c *gin.Context) {
	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	group, err := h.groups.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.IncMutation("add_group")
	}
	response.Created(c, group)
}

// AddMember godoc
// @Summary Enroll a student into the group
// @Tags Groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param payload body service.AddMemberRequest true "Member payload"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/members [post]
func (h *GroupHandler) AddMember(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.groups.AddMember(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.IncMutation("reassign_student")
	}
	response.JSON(c, http.StatusOK, detail, nil)
}
