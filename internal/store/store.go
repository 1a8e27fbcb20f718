// Package store holds the in-memory entity collections and is their sole
// mutator. Every mutation runs to completion under one lock, so readers only
// ever observe consistent snapshots.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/noah-isme/academy-crm-api/internal/models"
)

// Referential lookup failures surfaced by mutation operations.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrInvalidPayment  = errors.New("payment status does not match payment date")
)

// Config tunes invoice synthesis.
type Config struct {
	// DefaultInvoiceAmount is charged when a student's group cannot be resolved.
	DefaultInvoiceAmount int64
	// InvoiceDueDay is the day of month generated invoices fall due on.
	InvoiceDueDay int
}

// Store owns the students, groups, payments and contracts collections.
// Collections keep insertion order with the most recent record first.
type Store struct {
	mu        sync.RWMutex
	students  []models.Student
	groups    []models.Group
	payments  []models.Payment
	contracts []models.Contract

	// Monotonic id counters, independent of collection sizes so ids stay
	// unique even if deletion is introduced later.
	nextStudentID  int64
	nextGroupID    int64
	nextPaymentSeq int64

	cfg Config
}

// New returns an empty store.
func New(cfg Config) *Store {
	if cfg.DefaultInvoiceAmount <= 0 {
		cfg.DefaultInvoiceAmount = 500000
	}
	if cfg.InvoiceDueDay <= 0 || cfg.InvoiceDueDay > 28 {
		cfg.InvoiceDueDay = 5
	}
	return &Store{
		nextStudentID:  1,
		nextGroupID:    1,
		nextPaymentSeq: 1,
		cfg:            cfg,
	}
}

// Snapshot returns a deep copy of the full current state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.Snapshot{
		Students:  make([]models.Student, len(s.students)),
		Groups:    make([]models.Group, len(s.groups)),
		Payments:  make([]models.Payment, len(s.payments)),
		Contracts: make([]models.Contract, len(s.contracts)),
	}
	copy(snap.Students, s.students)
	copy(snap.Payments, s.payments)
	copy(snap.Contracts, s.contracts)
	for i, g := range s.groups {
		snap.Groups[i] = g
		snap.Groups[i].StudentIDs = append([]int64(nil), g.StudentIDs...)
	}
	return snap
}

// NewStudent is the AddStudent input: a full record minus id, avatar and
// performance, which the store derives.
type NewStudent struct {
	Name       string
	DOB        time.Time
	GroupID    int64
	Contact    models.Contact
	Status     models.StudentStatus
	JoinedDate time.Time
}

// AddStudent registers a student with a fresh id, a placeholder avatar and
// zeroed performance, prepends it, enrolls it in its group's roster and
// synthesises the 1-year enrollment contract.
func (s *Store) AddStudent(input NewStudent) models.Student {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextStudentID
	s.nextStudentID++

	student := models.Student{
		ID:         id,
		Name:       input.Name,
		DOB:        input.DOB,
		GroupID:    input.GroupID,
		Contact:    input.Contact,
		Status:     input.Status,
		JoinedDate: input.JoinedDate,
		AvatarURL:  fmt.Sprintf("https://picsum.photos/seed/student%d/200", id),
		Performance: models.Performance{
			Goals:      0,
			Assists:    0,
			Attendance: 100,
		},
	}
	s.students = append([]models.Student{student}, s.students...)

	// Tolerate a missing group: the student keeps its group id and the roster
	// is reconciled on the next reassignment.
	for i := range s.groups {
		if s.groups[i].ID == input.GroupID {
			s.groups[i].StudentIDs = append(s.groups[i].StudentIDs, id)
			break
		}
	}

	contract := models.Contract{
		ID:          fmt.Sprintf("c%d", id),
		StudentID:   id,
		StartDate:   input.JoinedDate,
		EndDate:     input.JoinedDate.AddDate(1, 0, 0),
		ContractURL: "#",
	}
	s.contracts = append([]models.Contract{contract}, s.contracts...)

	return student
}

// NewGroup is the AddGroup input.
type NewGroup struct {
	Name       string
	Coach      string
	MonthlyFee int64
}

// AddGroup registers a group with an empty roster and an id strictly greater
// than every existing group id.
func (s *Store) AddGroup(input NewGroup) models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextGroupID
	s.nextGroupID++

	group := models.Group{
		ID:         id,
		Name:       input.Name,
		Coach:      input.Coach,
		StudentIDs: []int64{},
		MonthlyFee: input.MonthlyFee,
	}
	s.groups = append([]models.Group{group}, s.groups...)
	return group
}

// ReassignStudentGroup moves a student to another group. The student's group
// id and both rosters change in one step: after the call the student appears
// in exactly one roster, the target group's. Reassigning to the current group
// is a no-op.
func (s *Store) ReassignStudentGroup(studentID, groupID int64) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	studentIdx := -1
	for i := range s.students {
		if s.students[i].ID == studentID {
			studentIdx = i
			break
		}
	}
	if studentIdx < 0 {
		return models.Student{}, ErrStudentNotFound
	}

	groupIdx := -1
	for i := range s.groups {
		if s.groups[i].ID == groupID {
			groupIdx = i
			break
		}
	}
	if groupIdx < 0 {
		return models.Student{}, ErrGroupNotFound
	}

	if s.students[studentIdx].GroupID == groupID && s.groups[groupIdx].HasStudent(studentID) {
		return s.students[studentIdx], nil
	}

	s.students[studentIdx].GroupID = groupID

	for i := range s.groups {
		s.groups[i].StudentIDs = removeID(s.groups[i].StudentIDs, studentID)
	}
	s.groups[groupIdx].StudentIDs = append(s.groups[groupIdx].StudentIDs, studentID)

	return s.students[studentIdx], nil
}

// NewPayment is the RecordPayment input. A nil Date means unpaid.
type NewPayment struct {
	StudentID int64
	Amount    int64
	Date      *time.Time
	DueDate   time.Time
	Status    models.PaymentStatus
}

// RecordPayment appends a manually recorded payment. The owning student must
// exist and the status must agree with the presence of a payment date.
func (s *Store) RecordPayment(input NewPayment) (models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.studentExists(input.StudentID) {
		return models.Payment{}, ErrStudentNotFound
	}
	paid := input.Status == models.PaymentStatusPaid
	if paid != (input.Date != nil) {
		return models.Payment{}, ErrInvalidPayment
	}

	payment := models.Payment{
		ID:        fmt.Sprintf("p%d", s.nextPaymentSeq),
		StudentID: input.StudentID,
		Amount:    input.Amount,
		Date:      input.Date,
		DueDate:   input.DueDate,
		Status:    input.Status,
	}
	s.nextPaymentSeq++
	s.payments = append([]models.Payment{payment}, s.payments...)
	return payment, nil
}

// GenerateMonthlyInvoices creates a Due payment for every Active student that
// has no payment falling due in asOf's calendar month. The whole batch is
// applied in one step; the already-invoiced check runs against the pre-batch
// state. Calling it twice for the same month creates nothing the second time.
func (s *Store) GenerateMonthlyInvoices(asOf time.Time) []models.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()

	year, month := asOf.Year(), asOf.Month()
	dueDate := time.Date(year, month, s.cfg.InvoiceDueDay, 0, 0, 0, 0, time.UTC)

	invoiced := make(map[int64]bool)
	for _, p := range s.payments {
		if p.DueDate.Year() == year && p.DueDate.Month() == month {
			invoiced[p.StudentID] = true
		}
	}

	fees := make(map[int64]int64, len(s.groups))
	for _, g := range s.groups {
		fees[g.ID] = g.MonthlyFee
	}

	var batch []models.Payment
	for _, student := range s.students {
		if student.Status != models.StudentStatusActive || invoiced[student.ID] {
			continue
		}
		amount, ok := fees[student.GroupID]
		if !ok || amount <= 0 {
			amount = s.cfg.DefaultInvoiceAmount
		}
		batch = append(batch, models.Payment{
			ID:        fmt.Sprintf("p%d", s.nextPaymentSeq),
			StudentID: student.ID,
			Amount:    amount,
			DueDate:   dueDate,
			Status:    models.PaymentStatusDue,
		})
		s.nextPaymentSeq++
	}

	if len(batch) > 0 {
		s.payments = append(append([]models.Payment{}, batch...), s.payments...)
	}
	return batch
}

// StudentByID returns a copy of the student record if present.
func (s *Store) StudentByID(id int64) (models.Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, student := range s.students {
		if student.ID == id {
			return student, true
		}
	}
	return models.Student{}, false
}

// GroupByID returns a copy of the group record if present.
func (s *Store) GroupByID(id int64) (models.Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, group := range s.groups {
		if group.ID == id {
			out := group
			out.StudentIDs = append([]int64(nil), group.StudentIDs...)
			return out, true
		}
	}
	return models.Group{}, false
}

func (s *Store) studentExists(id int64) bool {
	for _, student := range s.students {
		if student.ID == id {
			return true
		}
	}
	return false
}

func removeID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
