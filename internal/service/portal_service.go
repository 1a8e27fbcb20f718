package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm-api/internal/derive"
	"github.com/noah-isme/academy-crm-api/internal/dto"
	appErrors "github.com/noah-isme/academy-crm-api/pkg/errors"
)

// PortalService builds the student-facing portal view. The caller supplies
// the student id; who is "logged in" is the identity middleware's concern.
type PortalService struct {
	store  snapshotProvider
	logger *zap.Logger
	now    func() time.Time
}

// NewPortalService constructs the portal service.
func NewPortalService(st snapshotProvider, logger *zap.Logger) *PortalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortalService{store: st, logger: logger, now: time.Now}
}

// View assembles the portal payload for one student. A missing group or
// contract degrades to an absent field rather than an error.
func (s *PortalService) View(studentID int64) (*dto.PortalResponse, error) {
	snap := s.store.Snapshot()

	resp := &dto.PortalResponse{Payments: []dto.PaymentView{}}
	found := false
	for _, student := range snap.Students {
		if student.ID == studentID {
			resp.Student = student
			found = true
			break
		}
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	for i := range snap.Groups {
		if snap.Groups[i].ID == resp.Student.GroupID {
			resp.Group = &snap.Groups[i]
			break
		}
	}

	now := s.now()
	for _, payment := range derive.StudentPayments(snap.Payments, studentID) {
		resp.Payments = append(resp.Payments, dto.PaymentView{
			Payment:         payment,
			EffectiveStatus: derive.EffectiveStatus(payment, now),
		})
	}

	if contract, ok := derive.ContractFor(snap.Contracts, studentID); ok {
		resp.Contract = &contract
	}

	return resp, nil
}
