package models

import "time"

// PaymentStatus marks the stored state of a payment.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusDue     PaymentStatus = "Due"
	PaymentStatusOverdue PaymentStatus = "Overdue"
)

// Payment is a single tuition payment or generated invoice.
// Date is nil while the payment is unpaid; Paid implies a non-nil Date.
type Payment struct {
	ID        string        `json:"id"`
	StudentID int64         `json:"student_id"`
	Amount    int64         `json:"amount"`
	Date      *time.Time    `json:"date,omitempty"`
	DueDate   time.Time     `json:"due_date"`
	Status    PaymentStatus `json:"status"`
}

// PaymentFilter encapsulates composable payment list filters.
type PaymentFilter struct {
	Search    string
	Status    *PaymentStatus
	StudentID *int64
	Page      int
	PageSize  int
}
