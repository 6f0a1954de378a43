package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSingleAppointment(t *testing.T) {
	svc, st := newTestService(t)

	created, err := svc.Create(context.Background(), Appointment{
		PatientName: "Ana García",
		Phone:       "1145678901",
		Date:        "2024-04-02",
		StartTime:   "15:00",
		Notes:       "first consultation",
	}, "")
	require.NoError(t, err)
	require.Len(t, created, 1)

	a := created[0]
	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, a.SeriesID)
	assert.NotEqual(t, a.ID, a.SeriesID)
	assert.False(t, a.IsRecurring)
	assert.Empty(t, a.Frequency)
	assert.Equal(t, "Ana García", a.PatientName)
	assert.Equal(t, "2024-04-02", a.Date)
	assert.Equal(t, "15:00", a.StartTime)

	assert.Equal(t, created, st.appointments)
}

func TestCreateWeeklySeries(t *testing.T) {
	svc, st := newTestService(t)

	created, err := svc.Create(context.Background(), Appointment{
		PatientName: "Juan Pérez",
		Date:        "2024-01-01",
		StartTime:   "09:00",
	}, FrequencyWeekly)
	require.NoError(t, err)

	// 2024-01-01 plus six months is 2024-07-01, and the horizon is
	// inclusive: 26 weekly steps of 7 days land exactly on it.
	require.Len(t, created, 27)
	assert.Equal(t, "2024-01-01", created[0].Date)
	assert.Equal(t, "2024-07-01", created[26].Date)

	seriesID := created[0].SeriesID
	seen := make(map[string]bool)
	prev, err := time.Parse(DateLayout, created[0].Date)
	require.NoError(t, err)
	for i, occ := range created {
		assert.Equal(t, seriesID, occ.SeriesID)
		assert.True(t, occ.IsRecurring)
		assert.Equal(t, FrequencyWeekly, occ.Frequency)
		assert.Equal(t, "09:00", occ.StartTime)
		assert.False(t, seen[occ.ID], "duplicate id %s", occ.ID)
		seen[occ.ID] = true

		if i > 0 {
			cur, err := time.Parse(DateLayout, occ.Date)
			require.NoError(t, err)
			assert.Equal(t, 7*24*time.Hour, cur.Sub(prev), "gap before occurrence %d", i)
			prev = cur
		}
	}

	assert.Len(t, st.appointments, 27)
}

func TestCreateBiweeklySeries(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(context.Background(), Appointment{
		PatientName: "Lucía Díaz",
		Date:        "2024-01-01",
		StartTime:   "11:30",
	}, FrequencyBiweekly)
	require.NoError(t, err)

	// 13 biweekly steps of 14 days also land exactly on 2024-07-01.
	require.Len(t, created, 14)
	assert.Equal(t, "2024-01-01", created[0].Date)
	assert.Equal(t, "2024-07-01", created[13].Date)
	for _, occ := range created {
		assert.Equal(t, FrequencyBiweekly, occ.Frequency)
	}
}

func TestCreateSeriesHorizonNormalizesMonthOverflow(t *testing.T) {
	svc, _ := newTestService(t)

	// Aug 31 plus six calendar months normalizes to Mar 2 of the leap
	// year. The last occurrence that fits is Feb 29.
	created, err := svc.Create(context.Background(), Appointment{
		PatientName: "Pedro Gómez",
		Date:        "2023-08-31",
		StartTime:   "10:00",
	}, FrequencyWeekly)
	require.NoError(t, err)

	require.Len(t, created, 27)
	assert.Equal(t, "2023-08-31", created[0].Date)
	assert.Equal(t, "2024-02-29", created[26].Date)
}

func TestCreateAppendsToExistingAppointments(t *testing.T) {
	svc, st := newTestService(t)
	st.appointments = []Appointment{{ID: "existing", SeriesID: "existing", Date: "2024-01-05", StartTime: "08:00"}}

	_, err := svc.Create(context.Background(), Appointment{
		PatientName: "Sofía Romero",
		Date:        "2024-02-01",
		StartTime:   "14:00",
	}, "")
	require.NoError(t, err)

	require.Len(t, st.appointments, 2)
	assert.Equal(t, "existing", st.appointments[0].ID)
}

func TestCreateRejectsMalformedDate(t *testing.T) {
	svc, st := newTestService(t)

	_, err := svc.Create(context.Background(), Appointment{
		PatientName: "Ana",
		Date:        "02/04/2024",
		StartTime:   "15:00",
	}, "")
	assert.Error(t, err)
	assert.Empty(t, st.appointments)

	_, err = svc.Create(context.Background(), Appointment{
		PatientName: "Ana",
		Date:        "2024-04-02",
		StartTime:   "3pm",
	}, FrequencyWeekly)
	assert.Error(t, err)
	assert.Empty(t, st.appointments)
}

func TestCreateRejectsUnknownFrequency(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), Appointment{
		PatientName: "Ana",
		Date:        "2024-04-02",
		StartTime:   "15:00",
	}, Frequency("monthly"))
	assert.Error(t, err)
}
