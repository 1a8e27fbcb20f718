package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-crm-api/internal/models"
)

func TestAddStudentDefaults(t *testing.T) {
	s := NewSeeded(Config{})

	created := s.AddStudent(NewStudent{
		Name:       "Temur Aliyev",
		DOB:        date(2013, 5, 2),
		GroupID:    2,
		Contact:    models.Contact{Phone: "998-90-000-0000", Email: "temur@example.com", Address: "Tashkent"},
		Status:     models.StudentStatusActive,
		JoinedDate: date(2024, 7, 1),
	})

	got, ok := s.StudentByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, models.Performance{Goals: 0, Assists: 0, Attendance: 100}, got.Performance)
	assert.Equal(t, models.StudentStatusActive, got.Status)
	assert.NotEmpty(t, got.AvatarURL)

	// New student leads the collection and joins its group's roster.
	snap := s.Snapshot()
	assert.Equal(t, created.ID, snap.Students[0].ID)
	group, ok := s.GroupByID(2)
	require.True(t, ok)
	assert.True(t, group.HasStudent(created.ID))

	// The 1-year contract is synthesised from the join date.
	var contract *models.Contract
	for i := range snap.Contracts {
		if snap.Contracts[i].StudentID == created.ID {
			contract = &snap.Contracts[i]
			break
		}
	}
	require.NotNil(t, contract)
	assert.Equal(t, date(2024, 7, 1), contract.StartDate)
	assert.Equal(t, date(2025, 7, 1), contract.EndDate)
}

func TestAddStudentIDsAreMonotonic(t *testing.T) {
	s := NewSeeded(Config{})

	first := s.AddStudent(NewStudent{Name: "A", GroupID: 1, Status: models.StudentStatusActive, JoinedDate: date(2024, 7, 1)})
	second := s.AddStudent(NewStudent{Name: "B", GroupID: 1, Status: models.StudentStatusActive, JoinedDate: date(2024, 7, 1)})

	assert.Equal(t, int64(11), first.ID)
	assert.Equal(t, int64(12), second.ID)
}

func TestAddGroupAssignsStrictlyGreaterID(t *testing.T) {
	s := NewSeeded(Config{})

	group := s.AddGroup(NewGroup{Name: "U-16 Wolves", Coach: "Jasur Hasanov", MonthlyFee: 800000})

	for _, existing := range s.Snapshot().Groups {
		if existing.ID != group.ID {
			assert.Greater(t, group.ID, existing.ID)
		}
	}
	assert.Empty(t, group.StudentIDs)
	assert.Equal(t, group.ID, s.Snapshot().Groups[0].ID)
}

func TestReassignStudentGroup(t *testing.T) {
	s := NewSeeded(Config{})

	student, err := s.ReassignStudentGroup(1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), student.GroupID)

	// Exactly one roster contains the student, and it is the target group's.
	snap := s.Snapshot()
	var holders []int64
	for _, g := range snap.Groups {
		if g.HasStudent(1) {
			holders = append(holders, g.ID)
		}
	}
	assert.Equal(t, []int64{4}, holders)

	got, ok := s.StudentByID(1)
	require.True(t, ok)
	assert.Equal(t, int64(4), got.GroupID)
}

func TestReassignStudentGroupIdempotent(t *testing.T) {
	s := NewSeeded(Config{})

	before := s.Snapshot()
	_, err := s.ReassignStudentGroup(1, 1)
	require.NoError(t, err)

	after := s.Snapshot()
	assert.Equal(t, before.Groups, after.Groups)
	assert.Equal(t, before.Students, after.Students)
}

func TestReassignStudentGroupMissingRefs(t *testing.T) {
	s := NewSeeded(Config{})

	_, err := s.ReassignStudentGroup(999, 1)
	assert.ErrorIs(t, err, ErrStudentNotFound)

	_, err = s.ReassignStudentGroup(1, 999)
	assert.ErrorIs(t, err, ErrGroupNotFound)

	// Failed preconditions leave both sides untouched.
	got, ok := s.StudentByID(1)
	require.True(t, ok)
	assert.Equal(t, int64(1), got.GroupID)
}

func TestRecordPayment(t *testing.T) {
	s := NewSeeded(Config{})

	paidAt := date(2024, 8, 1)
	payment, err := s.RecordPayment(NewPayment{
		StudentID: 3,
		Amount:    500000,
		Date:      &paidAt,
		DueDate:   date(2024, 8, 5),
		Status:    models.PaymentStatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, "p13", payment.ID)
	assert.Equal(t, payment.ID, s.Snapshot().Payments[0].ID)
}

func TestRecordPaymentValidatesRefsAndStatus(t *testing.T) {
	s := NewSeeded(Config{})

	_, err := s.RecordPayment(NewPayment{StudentID: 999, Amount: 1, DueDate: date(2024, 8, 5), Status: models.PaymentStatusDue})
	assert.ErrorIs(t, err, ErrStudentNotFound)

	// Paid without a payment date.
	_, err = s.RecordPayment(NewPayment{StudentID: 1, Amount: 1, DueDate: date(2024, 8, 5), Status: models.PaymentStatusPaid})
	assert.ErrorIs(t, err, ErrInvalidPayment)

	// Due with a payment date.
	paidAt := date(2024, 8, 1)
	_, err = s.RecordPayment(NewPayment{StudentID: 1, Amount: 1, Date: &paidAt, DueDate: date(2024, 8, 5), Status: models.PaymentStatusDue})
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestGenerateMonthlyInvoices(t *testing.T) {
	s := NewSeeded(Config{DefaultInvoiceAmount: 450000, InvoiceDueDay: 5})

	// August 2024 has no seed payments, so every active student is invoiced.
	created := s.GenerateMonthlyInvoices(date(2024, 8, 15))
	assert.Len(t, created, 8)

	for _, invoice := range created {
		assert.Equal(t, models.PaymentStatusDue, invoice.Status)
		assert.Nil(t, invoice.Date)
		assert.Equal(t, date(2024, 8, 5), invoice.DueDate)

		student, ok := s.StudentByID(invoice.StudentID)
		require.True(t, ok)
		group, ok := s.GroupByID(student.GroupID)
		require.True(t, ok)
		assert.Equal(t, group.MonthlyFee, invoice.Amount)
	}
}

func TestGenerateMonthlyInvoicesIdempotentPerMonth(t *testing.T) {
	s := NewSeeded(Config{})

	first := s.GenerateMonthlyInvoices(date(2024, 8, 1))
	assert.Len(t, first, 8)

	second := s.GenerateMonthlyInvoices(date(2024, 8, 28))
	assert.Empty(t, second)
}

func TestGenerateMonthlyInvoicesSkipsCoveredStudents(t *testing.T) {
	s := NewSeeded(Config{})

	// In July 2024 every student except the inactive ones already has a
	// payment due that month... including student 3 (inactive). June 2024 only
	// covers students 1, 5 and 9.
	created := s.GenerateMonthlyInvoices(date(2024, 6, 10))

	ids := make(map[int64]bool)
	for _, invoice := range created {
		ids[invoice.StudentID] = true
	}
	// Active students without a June due date: 2, 4, 6, 7, 8, 10.
	assert.Len(t, created, 6)
	for _, id := range []int64{2, 4, 6, 7, 8, 10} {
		assert.True(t, ids[id], "expected invoice for student %d", id)
	}
	assert.False(t, ids[3], "inactive student must not be invoiced")
	assert.False(t, ids[9], "inactive student must not be invoiced")
}

func TestGenerateMonthlyInvoicesFallbackAmount(t *testing.T) {
	s := New(Config{DefaultInvoiceAmount: 450000})
	s.AddGroup(NewGroup{Name: "Trial", Coach: "Coach", MonthlyFee: 500000})
	s.AddStudent(NewStudent{Name: "Orphan", GroupID: 77, Status: models.StudentStatusActive, JoinedDate: date(2024, 7, 1)})

	created := s.GenerateMonthlyInvoices(date(2024, 8, 1))
	require.Len(t, created, 1)
	assert.Equal(t, int64(450000), created[0].Amount)
}

func TestSnapshotIsolation(t *testing.T) {
	s := NewSeeded(Config{})

	snap := s.Snapshot()
	snap.Students[0].Name = "mutated"
	snap.Groups[0].StudentIDs[0] = 999

	fresh := s.Snapshot()
	assert.NotEqual(t, "mutated", fresh.Students[0].Name)
	assert.NotEqual(t, int64(999), fresh.Groups[0].StudentIDs[0])
}

func TestPaymentIDsContinueAfterInvoices(t *testing.T) {
	s := NewSeeded(Config{})

	created := s.GenerateMonthlyInvoices(date(2024, 8, 1))
	require.NotEmpty(t, created)
	assert.Equal(t, "p13", created[0].ID)

	seen := make(map[string]bool)
	for _, p := range s.Snapshot().Payments {
		require.False(t, seen[p.ID], fmt.Sprintf("duplicate payment id %s", p.ID))
		seen[p.ID] = true
	}
}

func TestSeedDatasetShape(t *testing.T) {
	s := NewSeeded(Config{})
	snap := s.Snapshot()

	assert.Len(t, snap.Students, 10)
	assert.Len(t, snap.Groups, 4)
	assert.Len(t, snap.Payments, 12)
	assert.Len(t, snap.Contracts, 10)

	for _, contract := range snap.Contracts {
		assert.Equal(t, contract.StartDate.AddDate(1, 0, 0), contract.EndDate)
	}
}
