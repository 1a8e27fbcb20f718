package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardServiceOverview(t *testing.T) {
	svc := NewDashboardService(newTestStore(), nil, DashboardServiceConfig{})
	svc.now = func() time.Time { return time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC) }

	resp := svc.Overview()

	assert.Equal(t, 10, resp.TotalStudents)
	assert.Equal(t, 8, resp.ActiveStudents)
	assert.Equal(t, int64(4600000), resp.TotalRevenue)
	assert.Equal(t, 4, resp.PaymentsOutstanding)

	require.Len(t, resp.MonthlyRevenue, 7)
	assert.Equal(t, "Jun", resp.MonthlyRevenue[5].Month)
	assert.Equal(t, int64(1800000), resp.MonthlyRevenue[5].Revenue)
	assert.Equal(t, "Jul", resp.MonthlyRevenue[6].Month)
	assert.Equal(t, int64(2800000), resp.MonthlyRevenue[6].Revenue)

	require.Len(t, resp.GroupDistribution, 4)
	assert.Equal(t, "U-10 Lions", resp.GroupDistribution[0].Name)
	assert.Equal(t, 4, resp.GroupDistribution[0].Count)

	require.Len(t, resp.RecentPayments, 5)
	assert.Equal(t, "p4", resp.RecentPayments[0].ID)
	assert.Equal(t, "Otabek Shukurov Jr.", resp.RecentPayments[0].StudentName)
}

func TestDashboardServiceConfigDefaults(t *testing.T) {
	svc := NewDashboardService(newTestStore(), nil, DashboardServiceConfig{RecentPaymentsLimit: 2, RevenueMonths: 3})

	resp := svc.Overview()
	assert.Len(t, resp.RecentPayments, 2)
	assert.Len(t, resp.MonthlyRevenue, 3)
}
