// Package derive holds the read-only computations over store snapshots.
// Everything here is deterministic and side-effect free; views recompute on
// every read since the collections stay small.
package derive

import (
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/academy-crm-api/internal/models"
)

// StudentStatusCounts tallies students per enrollment status.
func StudentStatusCounts(students []models.Student) map[models.StudentStatus]int {
	counts := make(map[models.StudentStatus]int, 2)
	for _, s := range students {
		counts[s.Status]++
	}
	return counts
}

// ActiveStudentCount counts students with Active status.
func ActiveStudentCount(students []models.Student) int {
	return StudentStatusCounts(students)[models.StudentStatusActive]
}

// TotalRevenue sums the amounts of Paid payments.
func TotalRevenue(payments []models.Payment) int64 {
	var total int64
	for _, p := range payments {
		if p.Status == models.PaymentStatusPaid {
			total += p.Amount
		}
	}
	return total
}

// OutstandingCount counts payments that are Due or Overdue.
func OutstandingCount(payments []models.Payment) int {
	count := 0
	for _, p := range payments {
		if p.Status == models.PaymentStatusDue || p.Status == models.PaymentStatusOverdue {
			count++
		}
	}
	return count
}

// RevenueBucket is one month's paid revenue.
type RevenueBucket struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}

// MonthlyRevenue buckets paid payments by the calendar month of their payment
// date into a fixed January-anchored window of the given length. Payments
// dated past the window are dropped, matching the season view this feeds.
func MonthlyRevenue(payments []models.Payment, months int) []RevenueBucket {
	if months <= 0 || months > 12 {
		months = 12
	}
	buckets := make([]RevenueBucket, months)
	for i := range buckets {
		buckets[i].Month = time.Month(i + 1).String()[:3]
	}
	for _, p := range payments {
		if p.Status != models.PaymentStatusPaid || p.Date == nil {
			continue
		}
		idx := int(p.Date.Month()) - 1
		if idx < months {
			buckets[idx].Revenue += p.Amount
		}
	}
	return buckets
}

// GroupCount pairs a group with its member count.
type GroupCount struct {
	GroupID int64  `json:"group_id"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
}

// GroupDistribution counts students per group by their group id.
func GroupDistribution(groups []models.Group, students []models.Student) []GroupCount {
	distribution := make([]GroupCount, 0, len(groups))
	for _, g := range groups {
		count := 0
		for _, s := range students {
			if s.GroupID == g.ID {
				count++
			}
		}
		distribution = append(distribution, GroupCount{GroupID: g.ID, Name: g.Name, Count: count})
	}
	return distribution
}

// GroupMembers lists students whose group id matches, in collection order.
func GroupMembers(students []models.Student, groupID int64) []models.Student {
	members := make([]models.Student, 0)
	for _, s := range students {
		if s.GroupID == groupID {
			members = append(members, s)
		}
	}
	return members
}

// RecentPayments returns payments with a payment date, newest first,
// truncated to limit.
func RecentPayments(payments []models.Payment, limit int) []models.Payment {
	recent := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if p.Date != nil {
			recent = append(recent, p)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(*recent[j].Date)
	})
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

// FilterStudents applies the composable student filters: case-insensitive
// substring match on name or email, exact status, exact group. All set
// filters AND together.
func FilterStudents(students []models.Student, filter models.StudentFilter) []models.Student {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]models.Student, 0, len(students))
	for _, s := range students {
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Name), search) &&
			!strings.Contains(strings.ToLower(s.Contact.Email), search) {
			continue
		}
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		if filter.GroupID != nil && s.GroupID != *filter.GroupID {
			continue
		}
		matched = append(matched, s)
	}
	return matched
}

// FilterPayments applies the payment filters (owner-name substring, exact
// status, exact student) and orders the result by due date descending.
// Payments whose owner cannot be resolved never match a name search but still
// appear in unsearched listings.
func FilterPayments(payments []models.Payment, students []models.Student, filter models.PaymentFilter) []models.Payment {
	names := make(map[int64]string, len(students))
	for _, s := range students {
		names[s.ID] = strings.ToLower(s.Name)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]models.Payment, 0, len(payments))
	for _, p := range payments {
		if search != "" && !strings.Contains(names[p.StudentID], search) {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.StudentID != nil && p.StudentID != *filter.StudentID {
			continue
		}
		matched = append(matched, p)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].DueDate.After(matched[j].DueDate)
	})
	return matched
}

// StudentPayments lists a student's payments, most recent due date first.
func StudentPayments(payments []models.Payment, studentID int64) []models.Payment {
	return FilterPayments(payments, nil, models.PaymentFilter{StudentID: &studentID})
}

// ContractFor finds a student's contract.
func ContractFor(contracts []models.Contract, studentID int64) (models.Contract, bool) {
	for _, c := range contracts {
		if c.StudentID == studentID {
			return c, true
		}
	}
	return models.Contract{}, false
}

// EffectiveStatus reads a Due payment past its due date as Overdue. The
// stored status is never rewritten; the transition exists only at read time.
func EffectiveStatus(p models.Payment, now time.Time) models.PaymentStatus {
	if p.Status == models.PaymentStatusDue && now.After(p.DueDate) {
		return models.PaymentStatusOverdue
	}
	return p.Status
}
