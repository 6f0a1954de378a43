package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"psiagenda/internal/instrumentation"
	"psiagenda/internal/logging"
	"psiagenda/internal/schedule"
)

// maxBackupAgeDays is the elapsed-day count beyond which a fresh backup is
// considered due.
const maxBackupAgeDays = 7

// ErrInvalidImport is returned when an import payload is not a JSON array
// of appointments. The store is never touched in that case.
var ErrInvalidImport = errors.New("backup: payload is not an appointment array")

// Manager tracks time since the last export and implements the
// export/import round trip. JSON export is the canonical restore format;
// CSV and ICS are one-way report formats.
type Manager struct {
	store   schedule.Store
	now     func() time.Time
	logger  *slog.Logger
	metrics *instrumentation.Metrics
}

// ManagerConfig configures a Manager. Store is required.
type ManagerConfig struct {
	Store  schedule.Store
	Now    func() time.Time
	Logger *slog.Logger
}

// NewManager creates a Manager from the given configuration.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("backup: store is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Manager{store: cfg.Store, now: cfg.Now, logger: cfg.Logger}, nil
}

// SetMetrics attaches the metrics recorder. The recorder is nil-safe, so a
// Manager without one records nothing.
func (m *Manager) SetMetrics(mt *instrumentation.Metrics) {
	m.metrics = mt
}

// observeExport records one export by format.
func (m *Manager) observeExport(ctx context.Context, format string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.metrics.RecordBackupExport(ctx, format, status)
}

// IsDue reports whether a fresh backup is due: true when no backup has ever
// been made, or when the whole-day ceiling of the elapsed time strictly
// exceeds seven days. A backup made exactly seven days ago is not yet due;
// one made seven days and a minute ago counts as eight elapsed days and is.
func (m *Manager) IsDue(ctx context.Context) (bool, error) {
	last, ok, err := m.store.LastBackup(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	elapsedDays := int(math.Ceil(m.now().Sub(last).Hours() / 24))
	return elapsedDays > maxBackupAgeDays, nil
}

// MarkDone records the current time as the last-backup timestamp.
func (m *Manager) MarkDone(ctx context.Context) error {
	return m.store.SetLastBackup(ctx, m.now())
}

// ExportJSON writes the full collection as the canonical backup format: a
// JSON array of appointment objects, field-for-field restorable through
// ImportJSON. On success the backup clock is reset.
func (m *Manager) ExportJSON(ctx context.Context, w io.Writer) (err error) {
	defer func() { m.observeExport(ctx, "json", err) }()

	appointments, err := m.store.Load(ctx)
	if err != nil {
		return err
	}
	if appointments == nil {
		appointments = []schedule.Appointment{}
	}

	data, err := json.MarshalIndent(appointments, "", "  ")
	if err != nil {
		return fmt.Errorf("backup: encode appointments: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("backup: write export: %w", err)
	}

	if err := m.MarkDone(ctx); err != nil {
		return err
	}
	m.logger.Info("backup exported",
		logging.Operation("export_json"),
		slog.Int("appointments", len(appointments)),
	)
	return nil
}

// ImportJSON replaces the persisted collection with the given JSON payload.
// The payload must be a top-level array; anything else fails with
// ErrInvalidImport before any write, so a bad import can never leave the
// store in a mixed old/new state. On success the backup clock is reset and
// the seeded flag is set so example data is never generated over a restore.
func (m *Manager) ImportJSON(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("backup: read import payload: %w", err)
	}

	// json.Unmarshal accepts "null" into a slice without error, which would
	// silently wipe the book, so the array shape is checked first.
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return 0, fmt.Errorf("%w: top-level value is not an array", ErrInvalidImport)
	}

	var appointments []schedule.Appointment
	if err := json.Unmarshal(data, &appointments); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	if err := m.store.Save(ctx, appointments); err != nil {
		return 0, err
	}
	if err := m.store.MarkSeeded(ctx); err != nil {
		return 0, err
	}
	if err := m.MarkDone(ctx); err != nil {
		return 0, err
	}

	m.logger.Info("backup imported",
		logging.Operation("import_json"),
		slog.Int("appointments", len(appointments)),
	)
	return len(appointments), nil
}
