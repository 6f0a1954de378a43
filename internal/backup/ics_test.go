package backup

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psiagenda/internal/schedule"
)

func TestExportICS(t *testing.T) {
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	m, st, _ := newTestManager(t, base)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, []schedule.Appointment{
		{
			ID: "a1", SeriesID: "s1", PatientName: "Ana García",
			Date: "2024-04-02", StartTime: "15:00",
			Notes: "first consultation",
		},
		{
			ID: "a2", SeriesID: "s2", PatientName: "Juan Pérez",
			Date: "2024-04-03", StartTime: "09:30",
		},
	}))

	var buf bytes.Buffer
	require.NoError(t, m.ExportICS(ctx, &buf, 50))
	out := buf.String()

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "END:VCALENDAR")
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "UID:a1")
	assert.Contains(t, out, "UID:a2")
	assert.Contains(t, out, "Session: Ana García")
	assert.Contains(t, out, "first consultation")

	// The one-way calendar feed is not a backup.
	_, ok, err := st.LastBackup(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExportICSRejectsMalformedAppointment(t *testing.T) {
	m, st, _ := newTestManager(t, time.Now())
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, []schedule.Appointment{
		{ID: "bad", SeriesID: "bad", PatientName: "X", Date: "not-a-date", StartTime: "10:00"},
	}))

	var buf bytes.Buffer
	err := m.ExportICS(ctx, &buf, 0)
	assert.Error(t, err)
}
