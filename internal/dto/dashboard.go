package dto

import "github.com/noah-isme/academy-crm-api/internal/models"

// DashboardResponse aggregates the staff dashboard payload.
type DashboardResponse struct {
	TotalStudents       int                 `json:"totalStudents"`
	ActiveStudents      int                 `json:"activeStudents"`
	TotalRevenue        int64               `json:"totalRevenue"`
	PaymentsOutstanding int                 `json:"paymentsOutstanding"`
	MonthlyRevenue      []MonthlyRevenue    `json:"monthlyRevenue"`
	GroupDistribution   []GroupDistribution `json:"groupDistribution"`
	RecentPayments      []PaymentView       `json:"recentPayments"`
}

// MonthlyRevenue is one bucket of the season revenue chart.
type MonthlyRevenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// GroupDistribution counts members per training group.
type GroupDistribution struct {
	GroupID int64  `json:"groupId"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
}

// PaymentView decorates a payment with its resolved owner and the read-time
// effective status. Owner fields stay empty when the student cannot be
// resolved.
type PaymentView struct {
	models.Payment
	EffectiveStatus models.PaymentStatus `json:"effective_status"`
	StudentName     string               `json:"student_name,omitempty"`
	StudentAvatar   string               `json:"student_avatar,omitempty"`
}
