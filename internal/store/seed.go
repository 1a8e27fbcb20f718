package store

import (
	"fmt"
	"time"

	"github.com/noah-isme/academy-crm-api/internal/models"
)

// NewSeeded returns a store loaded with the fixed demo dataset: 10 students,
// 4 groups, 12 payments and one 1-year contract per student. Restarting the
// process always starts from this state.
func NewSeeded(cfg Config) *Store {
	s := New(cfg)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups = seedGroups()
	s.students = seedStudents()
	s.payments = seedPayments()

	s.contracts = make([]models.Contract, 0, len(s.students))
	for _, student := range s.students {
		s.contracts = append(s.contracts, models.Contract{
			ID:          fmt.Sprintf("c%d", student.ID),
			StudentID:   student.ID,
			StartDate:   student.JoinedDate,
			EndDate:     student.JoinedDate.AddDate(1, 0, 0),
			ContractURL: "#",
		})
	}

	for _, student := range s.students {
		if student.ID >= s.nextStudentID {
			s.nextStudentID = student.ID + 1
		}
	}
	for _, group := range s.groups {
		if group.ID >= s.nextGroupID {
			s.nextGroupID = group.ID + 1
		}
	}
	s.nextPaymentSeq = int64(len(s.payments)) + 1

	return s
}

func seedGroups() []models.Group {
	return []models.Group{
		{ID: 1, Name: "U-10 Lions", Coach: "Aziz Haydarov", StudentIDs: []int64{1, 2, 3, 4}, MonthlyFee: 500000},
		{ID: 2, Name: "U-12 Tigers", Coach: "Server Djeparov", StudentIDs: []int64{5, 6, 7}, MonthlyFee: 600000},
		{ID: 3, Name: "U-14 Eagles", Coach: "Timur Kapadze", StudentIDs: []int64{8, 9, 10}, MonthlyFee: 700000},
		{ID: 4, Name: "Goalkeepers", Coach: "Ignatiy Nesterov", StudentIDs: []int64{}, MonthlyFee: 550000},
	}
}

func seedStudents() []models.Student {
	return []models.Student{
		seedStudent(1, "Sardor Rashidov Jr.", date(2014, 6, 14), 1, "998-90-123-4567", "sardor@example.com", "123 Tashkent, Uzbekistan", models.StudentStatusActive, date(2023, 9, 1), "sardor", 12, 8, 95),
		seedStudent(2, "Eldor Shomurodov Jr.", date(2014, 3, 22), 1, "998-90-234-5678", "eldor@example.com", "234 Tashkent, Uzbekistan", models.StudentStatusActive, date(2023, 9, 1), "eldor", 15, 5, 98),
		seedStudent(3, "Jaloliddin Masharipov Jr.", date(2014, 9, 1), 1, "998-90-345-6789", "jalol@example.com", "345 Tashkent, Uzbekistan", models.StudentStatusInactive, date(2023, 10, 5), "jalol", 8, 10, 85),
		seedStudent(4, "Otabek Shukurov Jr.", date(2014, 7, 11), 1, "998-90-456-7890", "otabek@example.com", "456 Tashkent, Uzbekistan", models.StudentStatusActive, date(2023, 9, 15), "otabek", 5, 15, 92),
		seedStudent(5, "Odil Ahmedov Jr.", date(2012, 11, 25), 2, "998-91-123-4567", "odil@example.com", "567 Tashkent, Uzbekistan", models.StudentStatusActive, date(2022, 8, 20), "odil", 20, 12, 99),
		seedStudent(6, "Vitaliy Denisov Jr.", date(2012, 2, 23), 2, "998-91-234-5678", "vitaliy@example.com", "678 Tashkent, Uzbekistan", models.StudentStatusActive, date(2022, 8, 20), "vitaliy", 7, 18, 94),
		seedStudent(7, "Igor Sergeev Jr.", date(2012, 4, 30), 2, "998-91-345-6789", "igor@example.com", "789 Tashkent, Uzbekistan", models.StudentStatusActive, date(2022, 9, 1), "igor", 25, 7, 96),
		seedStudent(8, "Anzur Ismailov Jr.", date(2010, 4, 21), 3, "998-93-123-4567", "anzur@example.com", "890 Tashkent, Uzbekistan", models.StudentStatusActive, date(2021, 9, 1), "anzur", 3, 20, 97),
		seedStudent(9, "Marat Bikmaev Jr.", date(2010, 1, 1), 3, "998-93-234-5678", "marat@example.com", "901 Tashkent, Uzbekistan", models.StudentStatusInactive, date(2021, 9, 1), "marat", 18, 10, 88),
		seedStudent(10, "Vagiz Galiulin Jr.", date(2010, 10, 10), 3, "998-93-345-6789", "vagiz@example.com", "112 Tashkent, Uzbekistan", models.StudentStatusActive, date(2021, 10, 1), "vagiz", 14, 14, 93),
	}
}

func seedPayments() []models.Payment {
	return []models.Payment{
		{ID: "p1", StudentID: 1, Amount: 500000, Date: datePtr(2024, 7, 1), DueDate: date(2024, 7, 5), Status: models.PaymentStatusPaid},
		{ID: "p2", StudentID: 2, Amount: 500000, Date: datePtr(2024, 7, 2), DueDate: date(2024, 7, 5), Status: models.PaymentStatusPaid},
		{ID: "p3", StudentID: 3, Amount: 500000, DueDate: date(2024, 7, 5), Status: models.PaymentStatusOverdue},
		{ID: "p4", StudentID: 4, Amount: 500000, Date: datePtr(2024, 7, 5), DueDate: date(2024, 7, 5), Status: models.PaymentStatusPaid},
		{ID: "p5", StudentID: 5, Amount: 600000, DueDate: date(2024, 7, 5), Status: models.PaymentStatusDue},
		{ID: "p6", StudentID: 6, Amount: 600000, Date: datePtr(2024, 7, 1), DueDate: date(2024, 7, 5), Status: models.PaymentStatusPaid},
		{ID: "p7", StudentID: 7, Amount: 600000, DueDate: date(2024, 7, 5), Status: models.PaymentStatusDue},
		{ID: "p8", StudentID: 8, Amount: 700000, Date: datePtr(2024, 6, 28), DueDate: date(2024, 7, 5), Status: models.PaymentStatusPaid},
		{ID: "p9", StudentID: 9, Amount: 700000, DueDate: date(2024, 6, 5), Status: models.PaymentStatusOverdue},
		{ID: "p10", StudentID: 10, Amount: 700000, Date: datePtr(2024, 7, 4), DueDate: date(2024, 7, 5), Status: models.PaymentStatusPaid},
		{ID: "p11", StudentID: 1, Amount: 500000, Date: datePtr(2024, 6, 3), DueDate: date(2024, 6, 5), Status: models.PaymentStatusPaid},
		{ID: "p12", StudentID: 5, Amount: 600000, Date: datePtr(2024, 6, 5), DueDate: date(2024, 6, 5), Status: models.PaymentStatusPaid},
	}
}

func seedStudent(id int64, name string, dob time.Time, groupID int64, phone, email, address string, status models.StudentStatus, joined time.Time, avatarSeed string, goals, assists, attendance int) models.Student {
	return models.Student{
		ID:         id,
		Name:       name,
		DOB:        dob,
		GroupID:    groupID,
		Contact:    models.Contact{Phone: phone, Email: email, Address: address},
		Status:     status,
		JoinedDate: joined,
		AvatarURL:  fmt.Sprintf("https://picsum.photos/seed/%s/200", avatarSeed),
		Performance: models.Performance{
			Goals:      goals,
			Assists:    assists,
			Attendance: attendance,
		},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := date(year, month, day)
	return &t
}
