package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-crm-api/internal/models"
	"github.com/noah-isme/academy-crm-api/internal/service"
	appErrors "github.com/noah-isme/academy-crm-api/pkg/errors"
	"github.com/noah-isme/academy-crm-api/pkg/response"
)

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students  *service.StudentService
	summaries *service.SummaryService
	metrics   *service.MetricsService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService, summaries *service.SummaryService, metrics *service.MetricsService) *StudentHandler {
	return &StudentHandler{students: students, summaries: summaries, metrics: metrics}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param search query string false "Search by name or email"
// @Param status query string false "Filter by status (Active|Inactive)"
// @Param groupId query int false "Filter by group"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	var filter models.StudentFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if status := c.Query("status"); status != "" {
		s := models.StudentStatus(status)
		filter.Status = &s
	}
	if raw := c.Query("groupId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.GroupID = &id
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	students, pagination, err := h.students.List(filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// Get godoc
// @Summary Get student detail
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create godoc
// @Summary Add student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Create(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.IncMutation("add_student")
	}
	response.Created(c, student)
}

// Reassign godoc
// @Summary Move student to another group
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body service.ReassignStudentRequest true "Target group"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/group [put]
func (h *StudentHandler) Reassign(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ReassignStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Reassign(id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.IncMutation("reassign_student")
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Summary godoc
// @Summary Generate AI performance summary
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/summary [get]
func (h *StudentHandler) Summary(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.summaries.ForStudent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
