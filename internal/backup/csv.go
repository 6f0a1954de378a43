package backup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"psiagenda/internal/logging"
)

// csvBOM is the UTF-8 byte-order mark. Spreadsheet applications use it to
// detect the encoding; without it accented patient names render garbled.
const csvBOM = "\ufeff"

var csvHeaders = []string{"Patient", "Phone", "Email", "Date", "Time", "Type", "Notes"}

// ExportCSV writes a human-readable, semicolon-delimited report of the full
// collection. Dates are re-formatted DD/MM/YYYY and every field is
// double-quoted. This format is one-way: it is for spreadsheet viewing, not
// the restore path. On success the backup clock is reset, matching the
// original export behavior.
func (m *Manager) ExportCSV(ctx context.Context, w io.Writer) (err error) {
	defer func() { m.observeExport(ctx, "csv", err) }()

	appointments, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(csvBOM)
	writeCSVRow(&b, csvHeaders)
	for _, a := range appointments {
		recurrence := "One-time"
		if a.IsRecurring {
			recurrence = a.Frequency.Label()
		}
		writeCSVRow(&b, []string{
			a.PatientName,
			a.Phone,
			a.Email,
			reportDate(a.Date),
			a.StartTime,
			recurrence,
			a.Notes,
		})
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("backup: write report: %w", err)
	}

	if err := m.MarkDone(ctx); err != nil {
		return err
	}
	m.logger.Info("report exported",
		logging.Operation("export_csv"),
		slog.Int("appointments", len(appointments)),
	)
	return nil
}

// writeCSVRow appends one semicolon-delimited row with every field quoted.
// encoding/csv only quotes when forced to, and the report contract quotes
// unconditionally, so the row is assembled by hand.
func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// reportDate re-formats a YYYY-MM-DD date as DD/MM/YYYY. Malformed input
// passes through unchanged; the report is best-effort, not a validator.
func reportDate(date string) string {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
