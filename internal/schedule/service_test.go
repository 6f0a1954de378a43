package schedule

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store for tests, with optional error injection.
type fakeStore struct {
	appointments []Appointment
	lastBackup   time.Time
	hasBackup    bool
	seeded       bool

	loadErr error
	saveErr error
}

func (f *fakeStore) Load(ctx context.Context) ([]Appointment, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]Appointment, len(f.appointments))
	copy(out, f.appointments)
	return out, nil
}

func (f *fakeStore) Save(ctx context.Context, appointments []Appointment) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.appointments = make([]Appointment, len(appointments))
	copy(f.appointments, appointments)
	return nil
}

func (f *fakeStore) LastBackup(ctx context.Context) (time.Time, bool, error) {
	return f.lastBackup, f.hasBackup, nil
}

func (f *fakeStore) SetLastBackup(ctx context.Context, t time.Time) error {
	f.lastBackup = t
	f.hasBackup = true
	return nil
}

func (f *fakeStore) Seeded(ctx context.Context) (bool, error) {
	return f.seeded, nil
}

func (f *fakeStore) MarkSeeded(ctx context.Context) error {
	f.seeded = true
	return nil
}

// seqIDs hands out id-1, id-2, ... deterministically.
type seqIDs struct {
	n int
}

func (s *seqIDs) NewID() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	st := &fakeStore{}
	svc, err := NewService(ServiceConfig{
		Store: st,
		IDs:   &seqIDs{},
		Now: func() time.Time {
			return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
		},
	})
	require.NoError(t, err)
	return svc, st
}

func TestNewServiceRequiresStore(t *testing.T) {
	_, err := NewService(ServiceConfig{})
	assert.Error(t, err)
}

func TestFrequency(t *testing.T) {
	assert.True(t, FrequencyWeekly.Valid())
	assert.True(t, FrequencyBiweekly.Valid())
	assert.False(t, Frequency("monthly").Valid())
	assert.False(t, Frequency("").Valid())

	assert.Equal(t, 1, FrequencyWeekly.Interval())
	assert.Equal(t, 2, FrequencyBiweekly.Interval())

	assert.Equal(t, "Weekly", FrequencyWeekly.Label())
	assert.Equal(t, "Biweekly", FrequencyBiweekly.Label())
	assert.Equal(t, "One-time", Frequency("").Label())
}

func TestChronologicalLess(t *testing.T) {
	a := Appointment{Date: "2024-01-02", StartTime: "09:00"}
	b := Appointment{Date: "2024-01-02", StartTime: "10:00"}
	c := Appointment{Date: "2024-01-03", StartTime: "08:00"}

	assert.True(t, chronologicalLess(a, b))
	assert.True(t, chronologicalLess(b, c))
	assert.False(t, chronologicalLess(c, a))
	assert.False(t, chronologicalLess(a, a))
}
