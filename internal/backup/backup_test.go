package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psiagenda/internal/schedule"
	"psiagenda/internal/store"
)

func newTestManager(t *testing.T, now time.Time) (*Manager, *store.MemStore, *time.Time) {
	t.Helper()
	st := store.NewMemStore()
	clock := now
	m, err := NewManager(ManagerConfig{
		Store: st,
		Now:   func() time.Time { return clock },
	})
	require.NoError(t, err)
	return m, st, &clock
}

func TestNewManagerRequiresStore(t *testing.T) {
	_, err := NewManager(ManagerConfig{})
	assert.Error(t, err)
}

func TestIsDue(t *testing.T) {
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("never backed up", func(t *testing.T) {
		m, _, _ := newTestManager(t, base)
		due, err := m.IsDue(context.Background())
		require.NoError(t, err)
		assert.True(t, due)
	})

	t.Run("exactly seven days is not due", func(t *testing.T) {
		m, st, _ := newTestManager(t, base)
		require.NoError(t, st.SetLastBackup(context.Background(), base.AddDate(0, 0, -7)))
		due, err := m.IsDue(context.Background())
		require.NoError(t, err)
		assert.False(t, due)
	})

	t.Run("a minute past seven days is due", func(t *testing.T) {
		m, st, _ := newTestManager(t, base)
		require.NoError(t, st.SetLastBackup(context.Background(), base.AddDate(0, 0, -7).Add(-time.Minute)))
		due, err := m.IsDue(context.Background())
		require.NoError(t, err)
		assert.True(t, due)
	})

	t.Run("fresh backup is not due", func(t *testing.T) {
		m, st, _ := newTestManager(t, base)
		require.NoError(t, st.SetLastBackup(context.Background(), base.Add(-time.Hour)))
		due, err := m.IsDue(context.Background())
		require.NoError(t, err)
		assert.False(t, due)
	})
}

func TestExportJSONRoundTrip(t *testing.T) {
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	m, st, _ := newTestManager(t, base)
	ctx := context.Background()

	want := []schedule.Appointment{
		{
			ID: "a1", SeriesID: "s1", PatientName: "Ana García",
			Phone: "1145678901", Email: "ana@example.com",
			Date: "2024-04-02", StartTime: "15:00",
			IsRecurring: true, Frequency: schedule.FrequencyWeekly,
			Notes: "first consultation",
		},
		{ID: "a2", SeriesID: "s2", PatientName: "Juan Pérez", Date: "2024-04-03", StartTime: "09:30"},
	}
	require.NoError(t, st.Save(ctx, want))

	var buf bytes.Buffer
	require.NoError(t, m.ExportJSON(ctx, &buf))

	// The export is a plain JSON array restorable by ImportJSON.
	var decoded []schedule.Appointment
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, want, decoded)

	// Exporting resets the backup clock.
	last, ok, err := st.LastBackup(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, base.Equal(last))

	// Full round trip through the import path.
	require.NoError(t, st.Save(ctx, nil))
	count, err := m.ImportJSON(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	restored, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, restored)
}

func TestExportJSONEmptyCollection(t *testing.T) {
	m, _, _ := newTestManager(t, time.Now())

	var buf bytes.Buffer
	require.NoError(t, m.ExportJSON(context.Background(), &buf))
	assert.Equal(t, "[]\n", buf.String())
}

func TestImportJSONReplacesEverything(t *testing.T) {
	m, st, _ := newTestManager(t, time.Now())
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, []schedule.Appointment{
		{ID: "old", SeriesID: "old", PatientName: "Old Patient"},
	}))

	payload := `[{"id":"new","seriesId":"new","patientName":"New Patient","phone":"","email":"","date":"2024-05-01","startTime":"10:00","isRecurring":false}]`
	count, err := m.ImportJSON(ctx, strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := st.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].ID)

	// A restore counts as a backup and suppresses example seeding.
	_, ok, err := st.LastBackup(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	seeded, err := st.Seeded(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)
}

func TestImportJSONRejectsInvalidPayload(t *testing.T) {
	m, st, _ := newTestManager(t, time.Now())
	ctx := context.Background()

	existing := []schedule.Appointment{{ID: "keep", SeriesID: "keep"}}
	require.NoError(t, st.Save(ctx, existing))

	for _, payload := range []string{
		"not json at all",
		`{"id":"obj-not-array"}`,
		`42`,
		`null`,
		``,
	} {
		_, err := m.ImportJSON(ctx, strings.NewReader(payload))
		assert.ErrorIs(t, err, ErrInvalidImport, "payload %q", payload)
	}

	// The store was never touched.
	got, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, existing, got)

	_, ok, err := st.LastBackup(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "a failed import must not reset the backup clock")
}

func TestMarkDone(t *testing.T) {
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	m, st, clock := newTestManager(t, base)
	ctx := context.Background()

	require.NoError(t, m.MarkDone(ctx))
	last, ok, err := st.LastBackup(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, base.Equal(last))

	// Eight days later the backup is due again.
	*clock = base.AddDate(0, 0, 8)
	due, err := m.IsDue(ctx)
	require.NoError(t, err)
	assert.True(t, due)
}
