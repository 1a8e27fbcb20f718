package dto

// SummaryResponse carries the AI performance summary for a student.
// Generated is false when the fallback text was served instead.
type SummaryResponse struct {
	StudentID int64  `json:"student_id"`
	Summary   string `json:"summary"`
	Generated bool   `json:"generated"`
}

// InvoiceRunResponse reports the outcome of a monthly invoice generation run.
type InvoiceRunResponse struct {
	AsOf     string        `json:"as_of"`
	Created  int           `json:"created"`
	Invoices []PaymentView `json:"invoices"`
}
