package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teambition/rrule-go"

	"psiagenda/internal/logging"
)

// horizonMonths bounds recurrence expansion: occurrences are generated up
// to and including the template date plus six calendar months. AddDate
// normalizes day overflow (Aug 31 + 6 months lands in early March), which
// pins the exact day-count semantics of the horizon.
const horizonMonths = 6

// Create expands the template appointment under the given recurrence rule
// and appends the resulting occurrences to the store in a single save, so
// observers never see a partially-written series.
//
// A zero-value frequency creates exactly one non-recurring occurrence whose
// series id is unique to it. A weekly or biweekly frequency generates one
// occurrence per step from the template date, inclusive, until the stepped
// date would pass the six-month horizon; all of them share one fresh series
// id.
func (s *Service) Create(ctx context.Context, template Appointment, freq Frequency) (created []Appointment, err error) {
	start := time.Now()
	total := 0
	defer func() { s.observe(ctx, "create", start, total, err) }()

	created, err = s.expand(template, freq)
	if err != nil {
		return nil, err
	}

	current, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	all := append(current, created...)
	if err := s.store.Save(ctx, all); err != nil {
		return nil, err
	}
	total = len(all)

	s.logger.Info("appointments created",
		logging.Operation("create"),
		slog.Int("count", len(created)),
		slog.String("series_id", created[0].SeriesID),
		slog.Bool("recurring", created[0].IsRecurring),
	)
	return created, nil
}

// expand generates the occurrences for one creation request without
// touching the store.
func (s *Service) expand(template Appointment, freq Frequency) ([]Appointment, error) {
	if freq == "" {
		single := template
		single.ID = s.ids.NewID()
		single.SeriesID = s.ids.NewID()
		single.IsRecurring = false
		single.Frequency = ""
		if _, err := combineDateTime(single.Date, single.StartTime); err != nil {
			return nil, err
		}
		return []Appointment{single}, nil
	}
	if !freq.Valid() {
		return nil, fmt.Errorf("unknown frequency %q", freq)
	}

	start, err := combineDateTime(template.Date, template.StartTime)
	if err != nil {
		return nil, err
	}
	horizon := start.AddDate(0, horizonMonths, 0)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.WEEKLY,
		Interval: freq.Interval(),
		Dtstart:  start,
		Until:    horizon,
	})
	if err != nil {
		return nil, fmt.Errorf("build recurrence rule: %w", err)
	}

	seriesID := s.ids.NewID()
	steps := rule.All()
	occurrences := make([]Appointment, 0, len(steps))
	for _, step := range steps {
		occ := template
		occ.ID = s.ids.NewID()
		occ.SeriesID = seriesID
		occ.Date = step.Format(DateLayout)
		occ.IsRecurring = true
		occ.Frequency = freq
		occurrences = append(occurrences, occ)
	}
	return occurrences, nil
}
