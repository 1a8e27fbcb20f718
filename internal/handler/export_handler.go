package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-crm-api/internal/dto"
	"github.com/noah-isme/academy-crm-api/internal/models"
	"github.com/noah-isme/academy-crm-api/internal/service"
	appErrors "github.com/noah-isme/academy-crm-api/pkg/errors"
	"github.com/noah-isme/academy-crm-api/pkg/response"
)

// ExportHandler exposes payment ledger export endpoints.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Create godoc
// @Summary Queue a payment ledger export
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body dto.ExportRequest true "Export payload"
// @Success 202 {object} response.Envelope
// @Router /exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	job, err := h.exports.CreateJob(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job, nil)
}

// Status godoc
// @Summary Export job status
// @Tags Exports
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /exports/{id} [get]
func (h *ExportHandler) Status(c *gin.Context) {
	status, err := h.exports.GetStatus(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status, nil)
}

// Download godoc
// @Summary Download a finished export
// @Tags Exports
// @Produce octet-stream
// @Param id path string true "Job ID"
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /exports/{id}/download [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	download, err := h.exports.ResolveDownload(c.Param("id"), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close()

	contentType := "text/csv"
	if download.Format == models.ExportFormatPDF {
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	c.Header("Content-Type", contentType)

	info, err := download.File.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat export file"))
		return
	}
	c.DataFromReader(http.StatusOK, info.Size(), contentType, download.File, nil)
}
