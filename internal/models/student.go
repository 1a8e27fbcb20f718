package models

import "time"

// StudentStatus marks a student's enrollment state.
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "Active"
	StudentStatusInactive StudentStatus = "Inactive"
)

// Contact groups a student's contact details.
type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Performance holds a student's season statistics.
type Performance struct {
	Goals      int `json:"goals"`
	Assists    int `json:"assists"`
	Attendance int `json:"attendance"`
}

// Student represents a player enrolled in the academy.
type Student struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	DOB         time.Time     `json:"dob"`
	GroupID     int64         `json:"group_id"`
	Contact     Contact       `json:"contact"`
	Status      StudentStatus `json:"status"`
	JoinedDate  time.Time     `json:"joined_date"`
	AvatarURL   string        `json:"avatar_url"`
	Performance Performance   `json:"performance"`
}

// StudentFilter encapsulates composable student list filters. All set fields
// combine with logical AND.
type StudentFilter struct {
	Search   string
	Status   *StudentStatus
	GroupID  *int64
	Page     int
	PageSize int
}
