package schedule

import (
	"context"
	"sort"
	"strings"
)

// All returns the full collection in chronological order.
func (s *Service) All(ctx context.Context) ([]Appointment, error) {
	appointments, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	sortChronologically(appointments)
	return appointments, nil
}

// ByDate returns the occurrences on the given YYYY-MM-DD date, ascending by
// start time. Equal start times keep their stored order.
func (s *Service) ByDate(ctx context.Context, date string) ([]Appointment, error) {
	appointments, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	day := appointments[:0:0]
	for _, a := range appointments {
		if a.Date == date {
			day = append(day, a)
		}
	}
	sort.SliceStable(day, func(i, j int) bool {
		return day[i].StartTime < day[j].StartTime
	})
	return day, nil
}

// ByMonth returns the occurrences whose date falls in the given YYYY-MM
// month, in chronological order. Backs the monthly calendar layout.
func (s *Service) ByMonth(ctx context.Context, month string) ([]Appointment, error) {
	appointments, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	matched := appointments[:0:0]
	for _, a := range appointments {
		if strings.HasPrefix(a.Date, month+"-") {
			matched = append(matched, a)
		}
	}
	sortChronologically(matched)
	return matched, nil
}

// Upcoming returns up to limit occurrences on or after the given date in
// chronological order. A limit <= 0 means no limit. Backs the daily-list
// layout.
func (s *Service) Upcoming(ctx context.Context, fromDate string, limit int) ([]Appointment, error) {
	appointments, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	upcoming := appointments[:0:0]
	for _, a := range appointments {
		if a.Date >= fromDate {
			upcoming = append(upcoming, a)
		}
	}
	sortChronologically(upcoming)
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming, nil
}

func sortChronologically(appointments []Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		return chronologicalLess(appointments[i], appointments[j])
	})
}
