package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"psiagenda/internal/instrumentation"
)

// Store is the persistence boundary for the appointment collection and its
// backup metadata. Implementations must be durable across process restarts;
// the core never caches between calls, every operation is a full
// read-modify-write cycle against the store.
type Store interface {
	// Load returns the full appointment collection. Insertion order carries
	// no meaning; callers derive chronological order by sorting.
	Load(ctx context.Context) ([]Appointment, error)
	// Save replaces the full appointment collection.
	Save(ctx context.Context, appointments []Appointment) error

	// LastBackup returns the timestamp of the last successful export or
	// import. ok is false when no backup has ever been recorded.
	LastBackup(ctx context.Context) (t time.Time, ok bool, err error)
	// SetLastBackup records the last-backup timestamp.
	SetLastBackup(ctx context.Context, t time.Time) error

	// Seeded reports whether example data has been generated before. The
	// flag guarantees seeding never runs twice, even after the user deletes
	// every seeded appointment.
	Seeded(ctx context.Context) (bool, error)
	// MarkSeeded sets the seeded flag.
	MarkSeeded(ctx context.Context) error
}

// IDGenerator produces globally-unique string identifiers for appointment
// and series ids.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator is the production IDGenerator, backed by random UUIDs.
type UUIDGenerator struct{}

// NewID returns a fresh random UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// ServiceConfig configures a Service. Store is required; the remaining
// fields default to production implementations and exist so tests can
// inject a deterministic clock and id sequence.
type ServiceConfig struct {
	Store  Store
	IDs    IDGenerator
	Now    func() time.Time
	Logger *slog.Logger
}

// Service implements the appointment lifecycle: series expansion, scoped
// mutation, and date-based queries. It holds no state beyond what the store
// persists.
type Service struct {
	store   Store
	ids     IDGenerator
	now     func() time.Time
	logger  *slog.Logger
	metrics *instrumentation.Metrics
}

// NewService creates a Service from the given configuration.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("schedule: store is required")
	}
	if cfg.IDs == nil {
		cfg.IDs = UUIDGenerator{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Service{
		store:  cfg.Store,
		ids:    cfg.IDs,
		now:    cfg.Now,
		logger: cfg.Logger,
	}, nil
}

// Store returns the underlying store for collaborators that share it, such
// as the backup manager.
func (s *Service) Store() Store {
	return s.store
}

// SetMetrics attaches the metrics recorder. The recorder is nil-safe, so a
// Service without one records nothing.
func (s *Service) SetMetrics(m *instrumentation.Metrics) {
	s.metrics = m
}

// observe records one lifecycle operation and, after a successful write, the
// resulting collection size.
func (s *Service) observe(ctx context.Context, operation string, start time.Time, count int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordScheduleOperation(ctx, operation, status, time.Since(start))
	if err == nil {
		s.metrics.RecordAppointmentCount(ctx, count)
	}
}
