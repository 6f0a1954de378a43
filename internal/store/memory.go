package store

import (
	"context"
	"sync"
	"time"

	"psiagenda/internal/schedule"
)

// MemStore is an in-memory schedule.Store for tests and throwaway
// experiments. It copies slices on the way in and out so callers cannot
// alias the stored collection.
type MemStore struct {
	mu           sync.RWMutex
	appointments []schedule.Appointment
	lastBackup   *time.Time
	seeded       bool
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load(ctx context.Context) ([]schedule.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]schedule.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out, nil
}

func (s *MemStore) Save(ctx context.Context, appointments []schedule.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments = make([]schedule.Appointment, len(appointments))
	copy(s.appointments, appointments)
	return nil
}

func (s *MemStore) LastBackup(ctx context.Context) (time.Time, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastBackup == nil {
		return time.Time{}, false, nil
	}
	return *s.lastBackup, true, nil
}

func (s *MemStore) SetLastBackup(ctx context.Context, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastBackup = &t
	return nil
}

func (s *MemStore) Seeded(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seeded, nil
}

func (s *MemStore) MarkSeeded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeded = true
	return nil
}
