package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm-api/internal/derive"
	"github.com/noah-isme/academy-crm-api/internal/dto"
	"github.com/noah-isme/academy-crm-api/internal/models"
	"github.com/noah-isme/academy-crm-api/internal/store"
	appErrors "github.com/noah-isme/academy-crm-api/pkg/errors"
)

type paymentStore interface {
	Snapshot() models.Snapshot
	RecordPayment(input store.NewPayment) (models.Payment, error)
	GenerateMonthlyInvoices(asOf time.Time) []models.Payment
}

// RecordPaymentRequest holds the record-payment payload. An empty date means
// the payment is not yet settled.
type RecordPaymentRequest struct {
	StudentID int64  `json:"student_id" validate:"required,gt=0"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	DueDate   string `json:"due_date" validate:"required,datetime=2006-01-02"`
	Status    string `json:"status" validate:"required,oneof=Paid Due Overdue"`
}

// GenerateInvoicesRequest optionally pins the billing month; empty means now.
type GenerateInvoicesRequest struct {
	AsOf string `json:"as_of" validate:"omitempty,datetime=2006-01-02"`
}

// PaymentService handles payment recording, listing and invoice generation.
type PaymentService struct {
	store     paymentStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPaymentService constructs the payment service.
func NewPaymentService(st paymentStore, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{store: st, validator: validate, logger: logger, now: time.Now}
}

// List returns payments matching the filter, due date descending, decorated
// with the owning student where resolvable.
func (s *PaymentService) List(filter models.PaymentFilter) ([]dto.PaymentView, *models.Pagination, error) {
	snap := s.store.Snapshot()
	matched := derive.FilterPayments(snap.Payments, snap.Students, filter)

	page, size := normalizePage(filter.Page, filter.PageSize)
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: len(matched)}

	start := (page - 1) * size
	if start >= len(matched) {
		return []dto.PaymentView{}, pagination, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}

	return s.decorateAll(snap.Students, matched[start:end]), pagination, nil
}

// Recent returns the latest settled payments, newest first.
func (s *PaymentService) Recent(limit int) []dto.PaymentView {
	snap := s.store.Snapshot()
	return s.decorateAll(snap.Students, derive.RecentPayments(snap.Payments, limit))
}

// Record registers a manually entered payment.
func (s *PaymentService) Record(req RecordPaymentRequest) (*dto.PaymentView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}

	var paidAt *time.Time
	if req.Date != "" {
		t, _ := time.Parse(dateLayout, req.Date)
		paidAt = &t
	}
	dueDate, _ := time.Parse(dateLayout, req.DueDate)

	payment, err := s.store.RecordPayment(store.NewPayment{
		StudentID: req.StudentID,
		Amount:    req.Amount,
		Date:      paidAt,
		DueDate:   dueDate,
		Status:    models.PaymentStatus(req.Status),
	})
	if err != nil {
		return nil, mapStoreError(err)
	}
	s.logger.Sugar().Infow("payment recorded", "payment_id", payment.ID, "student_id", payment.StudentID, "amount", payment.Amount)

	view := s.decorateAll(s.store.Snapshot().Students, []models.Payment{payment})[0]
	return &view, nil
}

// GenerateInvoices runs the monthly invoice batch for the requested month.
func (s *PaymentService) GenerateInvoices(req GenerateInvoicesRequest) (*dto.InvoiceRunResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid invoice payload")
	}

	asOf := s.now().UTC()
	if req.AsOf != "" {
		asOf, _ = time.Parse(dateLayout, req.AsOf)
	}

	created := s.store.GenerateMonthlyInvoices(asOf)
	s.logger.Sugar().Infow("monthly invoices generated", "as_of", asOf.Format(dateLayout), "created", len(created))

	return &dto.InvoiceRunResponse{
		AsOf:     asOf.Format(dateLayout),
		Created:  len(created),
		Invoices: s.decorateAll(s.store.Snapshot().Students, created),
	}, nil
}

func (s *PaymentService) decorateAll(students []models.Student, payments []models.Payment) []dto.PaymentView {
	byID := make(map[int64]models.Student, len(students))
	for _, student := range students {
		byID[student.ID] = student
	}

	now := s.now()
	views := make([]dto.PaymentView, 0, len(payments))
	for _, payment := range payments {
		view := dto.PaymentView{
			Payment:         payment,
			EffectiveStatus: derive.EffectiveStatus(payment, now),
		}
		if student, ok := byID[payment.StudentID]; ok {
			view.StudentName = student.Name
			view.StudentAvatar = student.AvatarURL
		}
		views = append(views, view)
	}
	return views
}
