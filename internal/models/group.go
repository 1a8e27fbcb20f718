package models

// Group is a training group coached as one roster.
type Group struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Coach      string  `json:"coach"`
	StudentIDs []int64 `json:"student_ids"`
	// MonthlyFee is the group's monthly fee in the smallest UZS unit.
	MonthlyFee int64 `json:"monthly_fee"`
}

// HasStudent reports whether the roster contains the given student id.
func (g Group) HasStudent(studentID int64) bool {
	for _, id := range g.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}
