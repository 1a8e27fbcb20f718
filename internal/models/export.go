package models

import "time"

// ExportFormat enumerates supported ledger export formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportStatus tracks an export job through its lifecycle.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "queued"
	ExportStatusProcessing ExportStatus = "processing"
	ExportStatusFinished   ExportStatus = "finished"
	ExportStatusFailed     ExportStatus = "failed"
)

// ExportJob is an asynchronous payment ledger export. Jobs live in process
// memory only and reset with the rest of the state on restart.
type ExportJob struct {
	ID           string         `json:"id"`
	Format       ExportFormat   `json:"format"`
	StatusFilter *PaymentStatus `json:"status_filter,omitempty"`
	Status       ExportStatus   `json:"status"`
	Progress     int            `json:"progress"`
	ResultPath   string         `json:"-"`
	ResultURL    *string        `json:"result_url,omitempty"`
	ErrorMessage *string        `json:"error,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	FinishedAt   *time.Time     `json:"finished_at,omitempty"`
}
