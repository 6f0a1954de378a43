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

func TestExportCSV(t *testing.T) {
	base := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	m, st, _ := newTestManager(t, base)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, []schedule.Appointment{
		{
			ID: "a1", SeriesID: "s1", PatientName: "María López",
			Phone: "1145678901", Email: "maria@example.com",
			Date: "2024-04-02", StartTime: "15:00",
			IsRecurring: true, Frequency: schedule.FrequencyWeekly,
			Notes: "first consultation",
		},
		{
			ID: "a2", SeriesID: "s2", PatientName: "Juan Pérez",
			Date: "2024-04-03", StartTime: "09:30",
			Notes: `says "hello"`,
		},
	}))

	var buf bytes.Buffer
	require.NoError(t, m.ExportCSV(ctx, &buf))
	out := buf.String()

	// UTF-8 BOM so spreadsheets decode accented names correctly.
	assert.True(t, strings.HasPrefix(out, "\ufeff"), "missing BOM")

	lines := strings.Split(strings.TrimPrefix(out, "\ufeff"), "\n")
	require.Len(t, lines, 4, "header, two rows, trailing newline")
	assert.Equal(t, `"Patient";"Phone";"Email";"Date";"Time";"Type";"Notes"`, lines[0])
	assert.Equal(t, `"María López";"1145678901";"maria@example.com";"02/04/2024";"15:00";"Weekly";"first consultation"`, lines[1])
	assert.Equal(t, `"Juan Pérez";"";"";"03/04/2024";"09:30";"One-time";"says ""hello"""`, lines[2])
	assert.Empty(t, lines[3])

	// The CSV report also counts as a backup.
	_, ok, err := st.LastBackup(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReportDate(t *testing.T) {
	assert.Equal(t, "02/04/2024", reportDate("2024-04-02"))
	assert.Equal(t, "31/12/2023", reportDate("2023-12-31"))
	assert.Equal(t, "garbage", reportDate("garbage"))
}

func TestWriteCSVRowQuotesEverything(t *testing.T) {
	var b strings.Builder
	writeCSVRow(&b, []string{"plain", `with "quotes"`, "with;semicolon", ""})
	assert.Equal(t, `"plain";"with ""quotes""";"with;semicolon";""`+"\n", b.String())
}
