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

// PaymentHandler exposes payment ledger endpoints.
type PaymentHandler struct {
	payments *service.PaymentService
	metrics  *service.MetricsService
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(payments *service.PaymentService, metrics *service.MetricsService) *PaymentHandler {
	return &PaymentHandler{payments: payments, metrics: metrics}
}

// List godoc
// @Summary List payments
// @Tags Payments
// @Produce json
// @Param search query string false "Search by student name"
// @Param status query string false "Filter by status (Paid|Due|Overdue)"
// @Param studentId query int false "Filter by student"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var filter models.PaymentFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	if status := c.Query("status"); status != "" {
		s := models.PaymentStatus(status)
		filter.Status = &s
	}
	if raw := c.Query("studentId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.StudentID = &id
		}
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	payments, pagination, err := h.payments.List(filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments, pagination)
}

// Recent godoc
// @Summary Latest settled payments
// @Tags Payments
// @Produce json
// @Param limit query int false "Max entries"
// @Success 200 {object} response.Envelope
// @Router /payments/recent [get]
func (h *PaymentHandler) Recent(c *gin.Context) {
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	response.JSON(c, http.StatusOK, h.payments.Recent(limit), nil)
}

// Record godoc
// @Summary Record payment
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.RecordPaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Router /payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	payment, err := h.payments.Record(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.IncMutation("record_payment")
	}
	response.Created(c, payment)
}

// GenerateInvoices godoc
// @Summary Generate monthly invoices
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.GenerateInvoicesRequest false "Optional billing month"
// @Success 200 {object} response.Envelope
// @Router /payments/invoices [post]
func (h *PaymentHandler) GenerateInvoices(c *gin.Context) {
	var req service.GenerateInvoicesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
			return
		}
	}
	run, err := h.payments.GenerateInvoices(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.IncMutation("generate_invoices")
		h.metrics.AddInvoicesCreated(run.Created)
	}
	response.JSON(c, http.StatusOK, run, nil)
}
