package dto

import "github.com/noah-isme/academy-crm-api/internal/models"

// PortalResponse is the student-facing portal view: own profile, group,
// payment history and contract. Group and contract may be absent when the
// joins cannot be resolved.
type PortalResponse struct {
	Student  models.Student   `json:"student"`
	Group    *models.Group    `json:"group,omitempty"`
	Payments []PaymentView    `json:"payments"`
	Contract *models.Contract `json:"contract,omitempty"`
}

// StudentView decorates a student with its resolved group name.
type StudentView struct {
	models.Student
	GroupName string `json:"group_name,omitempty"`
}

// GroupView decorates a group with its member count.
type GroupView struct {
	models.Group
	MemberCount int `json:"member_count"`
}

// GroupDetail extends a group with the resolved member records.
type GroupDetail struct {
	models.Group
	Members []models.Student `json:"members"`
}
