package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-crm-api/internal/derive"
	"github.com/noah-isme/academy-crm-api/internal/dto"
	"github.com/noah-isme/academy-crm-api/internal/models"
	"github.com/noah-isme/academy-crm-api/internal/store"
	appErrors "github.com/noah-isme/academy-crm-api/pkg/errors"
)

type groupStore interface {
	Snapshot() models.Snapshot
	AddGroup(input store.NewGroup) models.Group
	ReassignStudentGroup(studentID, groupID int64) (models.Student, error)
	GroupByID(id int64) (models.Group, bool)
}

// CreateGroupRequest holds the add-group payload.
type CreateGroupRequest struct {
	Name       string `json:"name" validate:"required"`
	Coach      string `json:"coach" validate:"required"`
	MonthlyFee int64  `json:"monthly_fee" validate:"required,gt=0"`
}

// AddMemberRequest enrolls an existing student into the group.
type AddMemberRequest struct {
	StudentID int64 `json:"student_id" validate:"required,gt=0"`
}

// GroupService handles training group use-cases.
type GroupService struct {
	store     groupStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGroupService constructs the group service.
func NewGroupService(st groupStore, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupService{store: st, validator: validate, logger: logger}
}

// List returns all groups with their member counts.
func (s *GroupService) List() []dto.GroupView {
	snap := s.store.Snapshot()
	views := make([]dto.GroupView, 0, len(snap.Groups))
	for _, group := range snap.Groups {
		views = append(views, dto.GroupView{
			Group:       group,
			MemberCount: len(derive.GroupMembers(snap.Students, group.ID)),
		})
	}
	return views
}

// Get returns the group with its resolved member records.
func (s *GroupService) Get(id int64) (*dto.GroupDetail, error) {
	group, ok := s.store.GroupByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "group not found")
	}
	snap := s.store.Snapshot()
	return &dto.GroupDetail{
		Group:   group,
		Members: derive.GroupMembers(snap.Students, id),
	}, nil
}

// Create registers a new group with an empty roster.
func (s *GroupService) Create(req CreateGroupRequest) (*models.Group, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}
	group := s.store.AddGroup(store.NewGroup{
		Name:       req.Name,
		Coach:      req.Coach,
		MonthlyFee: req.MonthlyFee,
	})
	s.logger.Sugar().Infow("group created", "group_id", group.ID, "name", group.Name)
	return &group, nil
}

// AddMember moves an existing student into this group.
func (s *GroupService) AddMember(groupID int64, req AddMemberRequest) (*dto.GroupDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid member payload")
	}
	if _, err := s.store.ReassignStudentGroup(req.StudentID, groupID); err != nil {
		return nil, mapStoreError(err)
	}
	s.logger.Sugar().Infow("student enrolled", "group_id", groupID, "student_id", req.StudentID)
	return s.Get(groupID)
}
