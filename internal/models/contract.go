package models

import "time"

// Contract is a student's fixed-term enrollment contract.
type Contract struct {
	ID          string    `json:"id"`
	StudentID   int64     `json:"student_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	ContractURL string    `json:"contract_url"`
}
