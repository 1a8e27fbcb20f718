package dto

// ExportRequest asks for a payment ledger export.
type ExportRequest struct {
	Format string `json:"format" validate:"required,oneof=csv pdf"`
	Status string `json:"status" validate:"omitempty,oneof=Paid Due Overdue"`
}

// ExportJobResponse acknowledges a queued export.
type ExportJobResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}

// ExportStatusResponse reports job progress and, once finished, the signed
// download URL.
type ExportStatusResponse struct {
	ID        string  `json:"id"`
	Status    string  `json:"status"`
	Progress  int     `json:"progress"`
	ResultURL *string `json:"result_url,omitempty"`
	Error     *string `json:"error,omitempty"`
}
