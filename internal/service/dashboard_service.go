package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm-api/internal/derive"
	"github.com/noah-isme/academy-crm-api/internal/dto"
	"github.com/noah-isme/academy-crm-api/internal/models"
)

type snapshotProvider interface {
	Snapshot() models.Snapshot
}

// DashboardServiceConfig tunes dashboard derivations.
type DashboardServiceConfig struct {
	RecentPaymentsLimit int
	RevenueMonths       int
}

// DashboardService composes the staff dashboard payload. Everything is
// recomputed from a fresh snapshot on every call.
type DashboardService struct {
	store  snapshotProvider
	logger *zap.Logger
	now    func() time.Time
	cfg    DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(st snapshotProvider, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if cfg.RecentPaymentsLimit <= 0 {
		cfg.RecentPaymentsLimit = 5
	}
	if cfg.RevenueMonths <= 0 {
		cfg.RevenueMonths = 7
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{store: st, logger: logger, now: time.Now, cfg: cfg}
}

// Overview aggregates the dashboard stats, charts and recent payments.
func (s *DashboardService) Overview() *dto.DashboardResponse {
	snap := s.store.Snapshot()
	now := s.now()

	resp := &dto.DashboardResponse{
		TotalStudents:       len(snap.Students),
		ActiveStudents:      derive.ActiveStudentCount(snap.Students),
		TotalRevenue:        derive.TotalRevenue(snap.Payments),
		PaymentsOutstanding: derive.OutstandingCount(snap.Payments),
	}

	for _, bucket := range derive.MonthlyRevenue(snap.Payments, s.cfg.RevenueMonths) {
		resp.MonthlyRevenue = append(resp.MonthlyRevenue, dto.MonthlyRevenue(bucket))
	}
	for _, entry := range derive.GroupDistribution(snap.Groups, snap.Students) {
		resp.GroupDistribution = append(resp.GroupDistribution, dto.GroupDistribution{
			GroupID: entry.GroupID,
			Name:    entry.Name,
			Count:   entry.Count,
		})
	}

	students := make(map[int64]models.Student, len(snap.Students))
	for _, student := range snap.Students {
		students[student.ID] = student
	}
	for _, payment := range derive.RecentPayments(snap.Payments, s.cfg.RecentPaymentsLimit) {
		view := dto.PaymentView{
			Payment:         payment,
			EffectiveStatus: derive.EffectiveStatus(payment, now),
		}
		if student, ok := students[payment.StudentID]; ok {
			view.StudentName = student.Name
			view.StudentAvatar = student.AvatarURL
		}
		resp.RecentPayments = append(resp.RecentPayments, view)
	}

	return resp
}
