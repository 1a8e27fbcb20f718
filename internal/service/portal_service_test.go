package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/academy-crm-api/pkg/errors"
)

func TestPortalServiceView(t *testing.T) {
	svc := NewPortalService(newTestStore(), nil)
	svc.now = func() time.Time { return time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC) }

	resp, err := svc.View(5)
	require.NoError(t, err)
	assert.Equal(t, "Odil Ahmedov Jr.", resp.Student.Name)

	require.NotNil(t, resp.Group)
	assert.Equal(t, "U-12 Tigers", resp.Group.Name)

	require.Len(t, resp.Payments, 2)
	assert.Equal(t, "p5", resp.Payments[0].ID)
	assert.Equal(t, "p12", resp.Payments[1].ID)

	require.NotNil(t, resp.Contract)
	assert.Equal(t, "c5", resp.Contract.ID)
	assert.Equal(t, resp.Student.JoinedDate.AddDate(1, 0, 0), resp.Contract.EndDate)
}

func TestPortalServiceViewOverdueEffectiveStatus(t *testing.T) {
	svc := NewPortalService(newTestStore(), nil)
	svc.now = func() time.Time { return time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC) }

	resp, err := svc.View(5)
	require.NoError(t, err)
	// p5 is Due with a July 5 due date, so it reads as Overdue by August
	assert.Equal(t, "p5", resp.Payments[0].ID)
	assert.Equal(t, "Overdue", string(resp.Payments[0].EffectiveStatus))
}

func TestPortalServiceViewMissingStudent(t *testing.T) {
	svc := NewPortalService(newTestStore(), nil)

	_, err := svc.View(999)
	assert.Equal(t, appErrors.ErrNotFound.Code, errorCode(t, err))
}
