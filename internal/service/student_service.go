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

const dateLayout = "2006-01-02"

type studentStore interface {
	Snapshot() models.Snapshot
	AddStudent(input store.NewStudent) models.Student
	ReassignStudentGroup(studentID, groupID int64) (models.Student, error)
	StudentByID(id int64) (models.Student, bool)
	GroupByID(id int64) (models.Group, bool)
}

// CreateStudentRequest holds the add-student payload. Dates use YYYY-MM-DD.
type CreateStudentRequest struct {
	Name       string `json:"name" validate:"required"`
	DOB        string `json:"dob" validate:"required,datetime=2006-01-02"`
	GroupID    int64  `json:"group_id" validate:"required,gt=0"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Address    string `json:"address"`
	Status     string `json:"status" validate:"required,oneof=Active Inactive"`
	JoinedDate string `json:"joined_date" validate:"required,datetime=2006-01-02"`
}

// ReassignStudentRequest moves a student to another group.
type ReassignStudentRequest struct {
	GroupID int64 `json:"group_id" validate:"required,gt=0"`
}

// StudentService handles student use-cases.
type StudentService struct {
	store     studentStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(st studentStore, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{store: st, validator: validate, logger: logger}
}

// List returns students matching the filter plus pagination metadata.
func (s *StudentService) List(filter models.StudentFilter) ([]dto.StudentView, *models.Pagination, error) {
	snap := s.store.Snapshot()
	matched := derive.FilterStudents(snap.Students, filter)

	page, size := normalizePage(filter.Page, filter.PageSize)
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: len(matched)}

	start := (page - 1) * size
	if start >= len(matched) {
		return []dto.StudentView{}, pagination, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}

	views := make([]dto.StudentView, 0, end-start)
	for _, student := range matched[start:end] {
		views = append(views, s.decorate(snap.Groups, student))
	}
	return views, pagination, nil
}

// Get returns a single student with its resolved group name.
func (s *StudentService) Get(id int64) (*dto.StudentView, error) {
	student, ok := s.store.StudentByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	view := s.decorate(s.store.Snapshot().Groups, student)
	return &view, nil
}

// Create registers a new student; id, avatar and performance are derived by
// the store.
func (s *StudentService) Create(req CreateStudentRequest) (*dto.StudentView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	if _, ok := s.store.GroupByID(req.GroupID); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "group not found")
	}

	dob, _ := time.Parse(dateLayout, req.DOB)
	joined, _ := time.Parse(dateLayout, req.JoinedDate)

	student := s.store.AddStudent(store.NewStudent{
		Name:    req.Name,
		DOB:     dob,
		GroupID: req.GroupID,
		Contact: models.Contact{
			Phone:   req.Phone,
			Email:   req.Email,
			Address: req.Address,
		},
		Status:     models.StudentStatus(req.Status),
		JoinedDate: joined,
	})
	s.logger.Sugar().Infow("student created", "student_id", student.ID, "group_id", student.GroupID)

	view := s.decorate(s.store.Snapshot().Groups, student)
	return &view, nil
}

// Reassign moves the student into the target group, keeping the group id and
// both rosters consistent.
func (s *StudentService) Reassign(studentID int64, req ReassignStudentRequest) (*dto.StudentView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reassignment payload")
	}
	student, err := s.store.ReassignStudentGroup(studentID, req.GroupID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	s.logger.Sugar().Infow("student reassigned", "student_id", studentID, "group_id", req.GroupID)

	view := s.decorate(s.store.Snapshot().Groups, student)
	return &view, nil
}

func (s *StudentService) decorate(groups []models.Group, student models.Student) dto.StudentView {
	view := dto.StudentView{Student: student}
	for _, g := range groups {
		if g.ID == student.GroupID {
			view.GroupName = g.Name
			break
		}
	}
	return view
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	return page, size
}

func mapStoreError(err error) error {
	switch err {
	case store.ErrStudentNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	case store.ErrGroupNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, "group not found")
	case store.ErrInvalidPayment:
		return appErrors.Clone(appErrors.ErrValidation, "payment status does not match payment date")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "store operation failed")
	}
}
