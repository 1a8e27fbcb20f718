package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-crm-api/internal/models"
	"github.com/noah-isme/academy-crm-api/internal/store"
	appErrors "github.com/noah-isme/academy-crm-api/pkg/errors"
)

func newTestStore() *store.Store {
	return store.NewSeeded(store.Config{DefaultInvoiceAmount: 500000, InvoiceDueDay: 5})
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr), "expected typed error, got %v", err)
	return appErr.Code
}

func TestStudentServiceList(t *testing.T) {
	svc := NewStudentService(newTestStore(), nil, nil)

	views, pagination, err := svc.List(models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, views, 10)
	assert.Equal(t, 10, pagination.TotalCount)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 20, pagination.PageSize)
	assert.NotEmpty(t, views[0].GroupName)
}

func TestStudentServiceListPagination(t *testing.T) {
	svc := NewStudentService(newTestStore(), nil, nil)

	views, pagination, err := svc.List(models.StudentFilter{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Len(t, views, 3)
	assert.Equal(t, 10, pagination.TotalCount)

	views, _, err = svc.List(models.StudentFilter{Page: 99, PageSize: 3})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestStudentServiceListSearch(t *testing.T) {
	svc := NewStudentService(newTestStore(), nil, nil)

	views, pagination, err := svc.List(models.StudentFilter{Search: "odil"})
	require.NoError(t, err)
	require.Equal(t, 1, pagination.TotalCount)
	assert.Equal(t, int64(5), views[0].ID)
}

func TestStudentServiceGet(t *testing.T) {
	svc := NewStudentService(newTestStore(), nil, nil)

	view, err := svc.Get(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.ID)
	assert.NotEmpty(t, view.GroupName)

	_, err = svc.Get(999)
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(t, err))
}

func TestStudentServiceCreate(t *testing.T) {
	svc := NewStudentService(newTestStore(), nil, nil)

	view, err := svc.Create(CreateStudentRequest{
		Name:       "Test Player",
		DOB:        "2015-03-10",
		GroupID:    2,
		Phone:      "+998901112233",
		Email:      "player@example.com",
		Status:     "Active",
		JoinedDate: "2024-07-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), view.ID)
	assert.Equal(t, int64(2), view.GroupID)
	assert.NotEmpty(t, view.GroupName)
	assert.Equal(t, 100, view.Performance.Attendance)
}

func TestStudentServiceCreateValidation(t *testing.T) {
	svc := NewStudentService(newTestStore(), nil, nil)

	_, err := svc.Create(CreateStudentRequest{
		Name:       "Broken",
		DOB:        "not-a-date",
		GroupID:    1,
		Phone:      "x",
		Email:      "not-an-email",
		Status:     "Active",
		JoinedDate: "2024-07-01",
	})
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(t, err))
}

func TestStudentServiceCreateUnknownGroup(t *testing.T) {
	svc := NewStudentService(newTestStore(), nil, nil)

	_, err := svc.Create(CreateStudentRequest{
		Name:       "Orphan",
		DOB:        "2015-03-10",
		GroupID:    999,
		Phone:      "+998901112233",
		Email:      "orphan@example.com",
		Status:     "Active",
		JoinedDate: "2024-07-01",
	})
	assert.Equal(t, appErrors.ErrValidation.Code, errorCode(t, err))
}

func TestStudentServiceReassign(t *testing.T) {
	svc := NewStudentService(newTestStore(), nil, nil)

	view, err := svc.Reassign(1, ReassignStudentRequest{GroupID: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(4), view.GroupID)
	assert.Equal(t, "Goalkeepers", view.GroupName)

	_, err = svc.Reassign(999, ReassignStudentRequest{GroupID: 4})
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(t, err))

	_, err = svc.Reassign(1, ReassignStudentRequest{GroupID: 999})
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(t, err))
}
