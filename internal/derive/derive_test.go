package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-crm-api/internal/models"
	"github.com/noah-isme/academy-crm-api/internal/store"
)

func seedSnapshot() models.Snapshot {
	return store.NewSeeded(store.Config{}).Snapshot()
}

func TestStudentStatusCounts(t *testing.T) {
	snap := seedSnapshot()

	counts := StudentStatusCounts(snap.Students)
	assert.Equal(t, 8, counts[models.StudentStatusActive])
	assert.Equal(t, 2, counts[models.StudentStatusInactive])
	assert.Equal(t, 8, ActiveStudentCount(snap.Students))
}

func TestTotalRevenue(t *testing.T) {
	snap := seedSnapshot()

	// Paid seed amounts: 500k x4 + 600k x2 + 700k x2.
	assert.Equal(t, int64(4600000), TotalRevenue(snap.Payments))
}

func TestOutstandingCount(t *testing.T) {
	snap := seedSnapshot()
	assert.Equal(t, 4, OutstandingCount(snap.Payments))
}

func TestRevenueIncreasesByRecordedAmount(t *testing.T) {
	s := store.NewSeeded(store.Config{})
	before := TotalRevenue(s.Snapshot().Payments)

	paidAt := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.RecordPayment(store.NewPayment{
		StudentID: 3,
		Amount:    500000,
		Date:      &paidAt,
		DueDate:   time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC),
		Status:    models.PaymentStatusPaid,
	})
	require.NoError(t, err)

	assert.Equal(t, before+500000, TotalRevenue(s.Snapshot().Payments))
}

func TestMonthlyRevenue(t *testing.T) {
	snap := seedSnapshot()

	buckets := MonthlyRevenue(snap.Payments, 7)
	require.Len(t, buckets, 7)
	assert.Equal(t, "Jan", buckets[0].Month)
	assert.Equal(t, "Jul", buckets[6].Month)

	// June: p8 700k + p11 500k + p12 600k. July: p1, p2, p4 at 500k each,
	// p6 600k, p10 700k.
	assert.Equal(t, int64(1800000), buckets[5].Revenue)
	assert.Equal(t, int64(2800000), buckets[6].Revenue)
	for i := 0; i < 5; i++ {
		assert.Zero(t, buckets[i].Revenue)
	}
}

func TestGroupDistribution(t *testing.T) {
	snap := seedSnapshot()

	distribution := GroupDistribution(snap.Groups, snap.Students)
	require.Len(t, distribution, 4)

	byID := make(map[int64]int)
	for _, entry := range distribution {
		byID[entry.GroupID] = entry.Count
	}
	assert.Equal(t, 4, byID[1])
	assert.Equal(t, 3, byID[2])
	assert.Equal(t, 3, byID[3])
	assert.Equal(t, 0, byID[4])
}

func TestGroupMembers(t *testing.T) {
	snap := seedSnapshot()

	members := GroupMembers(snap.Students, 2)
	require.Len(t, members, 3)
	for _, m := range members {
		assert.Equal(t, int64(2), m.GroupID)
	}
}

func TestRecentPayments(t *testing.T) {
	snap := seedSnapshot()

	recent := RecentPayments(snap.Payments, 5)
	require.Len(t, recent, 5)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].Date.After(*recent[i-1].Date))
	}
	// Newest seed payment date is 2024-07-05 (p4).
	assert.Equal(t, "p4", recent[0].ID)
}

func TestFilterStudentsComposesWithAND(t *testing.T) {
	snap := seedSnapshot()

	inactive := models.StudentStatusInactive
	lions := int64(1)
	matched := FilterStudents(snap.Students, models.StudentFilter{Status: &inactive, GroupID: &lions})

	// Exactly one inactive student trains with the U-10 Lions.
	require.Len(t, matched, 1)
	assert.Equal(t, int64(3), matched[0].ID)
}

func TestFilterStudentsSearchMatchesNameOrEmail(t *testing.T) {
	snap := seedSnapshot()

	byName := FilterStudents(snap.Students, models.StudentFilter{Search: "odIL"})
	require.Len(t, byName, 1)
	assert.Equal(t, int64(5), byName[0].ID)

	byEmail := FilterStudents(snap.Students, models.StudentFilter{Search: "vagiz@example"})
	require.Len(t, byEmail, 1)
	assert.Equal(t, int64(10), byEmail[0].ID)
}

func TestFilterPayments(t *testing.T) {
	snap := seedSnapshot()

	due := models.PaymentStatusDue
	matched := FilterPayments(snap.Payments, snap.Students, models.PaymentFilter{Status: &due})
	require.Len(t, matched, 2)
	for i := 1; i < len(matched); i++ {
		assert.False(t, matched[i].DueDate.After(matched[i-1].DueDate))
	}

	bySearch := FilterPayments(snap.Payments, snap.Students, models.PaymentFilter{Search: "sardor"})
	require.Len(t, bySearch, 2)
	for _, p := range bySearch {
		assert.Equal(t, int64(1), p.StudentID)
	}
}

func TestFilterPaymentsToleratesMissingStudent(t *testing.T) {
	payments := []models.Payment{{ID: "px", StudentID: 42, Amount: 1, DueDate: time.Now(), Status: models.PaymentStatusDue}}

	// No owner resolved: never matches a search, still listed otherwise.
	assert.Empty(t, FilterPayments(payments, nil, models.PaymentFilter{Search: "anyone"}))
	assert.Len(t, FilterPayments(payments, nil, models.PaymentFilter{}), 1)
}

func TestStudentPayments(t *testing.T) {
	snap := seedSnapshot()

	history := StudentPayments(snap.Payments, 5)
	require.Len(t, history, 2)
	assert.Equal(t, "p5", history[0].ID)
	assert.Equal(t, "p12", history[1].ID)
}

func TestContractFor(t *testing.T) {
	snap := seedSnapshot()

	contract, ok := ContractFor(snap.Contracts, 5)
	require.True(t, ok)
	assert.Equal(t, "c5", contract.ID)

	_, ok = ContractFor(snap.Contracts, 999)
	assert.False(t, ok)
}

func TestEffectiveStatus(t *testing.T) {
	due := models.Payment{Status: models.PaymentStatusDue, DueDate: time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, models.PaymentStatusDue, EffectiveStatus(due, time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, models.PaymentStatusOverdue, EffectiveStatus(due, time.Date(2024, 7, 6, 0, 0, 0, 0, time.UTC)))

	paid := models.Payment{Status: models.PaymentStatusPaid, DueDate: due.DueDate}
	assert.Equal(t, models.PaymentStatusPaid, EffectiveStatus(paid, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)))
}
