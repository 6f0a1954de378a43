package backup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	ics "github.com/arran4/golang-ical"

	"psiagenda/internal/logging"
	"psiagenda/internal/schedule"
)

// defaultSessionMinutes is the assumed session length for calendar export.
// The appointment model only records a start time.
const defaultSessionMinutes = 60

// ExportICS writes the full collection as an iCalendar file with one VEVENT
// per occurrence, so the schedule can be loaded into any calendar
// application. sessionMinutes sets the event duration; zero or negative
// falls back to one hour. Like CSV this is a one-way format, and unlike the
// backup exports it does not touch the backup clock.
func (m *Manager) ExportICS(ctx context.Context, w io.Writer, sessionMinutes int) (err error) {
	defer func() { m.observeExport(ctx, "ics", err) }()

	if sessionMinutes <= 0 {
		sessionMinutes = defaultSessionMinutes
	}

	appointments, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//psiagenda//schedule//EN")

	stamp := m.now().UTC()
	for _, a := range appointments {
		start, err := time.ParseInLocation(
			schedule.DateLayout+" "+schedule.TimeLayout,
			a.Date+" "+a.StartTime, time.Local)
		if err != nil {
			return fmt.Errorf("backup: appointment %s has invalid schedule key: %w", a.ID, err)
		}

		event := cal.AddEvent(a.ID)
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(time.Duration(sessionMinutes) * time.Minute))
		event.SetSummary("Session: " + a.PatientName)
		if a.Notes != "" {
			event.SetDescription(a.Notes)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("backup: serialize calendar: %w", err)
	}

	m.logger.Info("calendar exported",
		logging.Operation("export_ics"),
		slog.Int("appointments", len(appointments)),
	)
	return nil
}
