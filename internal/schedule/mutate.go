package schedule

import (
	"context"
	"log/slog"
	"time"

	"psiagenda/internal/logging"
)

// UpdateSingle merges the patch into the occurrence with the given id and
// persists the full collection. Returns ErrNotFound when the id is unknown;
// callers that want the permissive fire-and-forget behavior of older
// versions can treat that sentinel as a warning.
func (s *Service) UpdateSingle(ctx context.Context, id string, patch Patch) (err error) {
	start := time.Now()
	total := 0
	defer func() { s.observe(ctx, "update_single", start, total, err) }()

	appointments, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range appointments {
		if appointments[i].ID == id {
			patch.apply(&appointments[i], true)
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}

	if err := s.store.Save(ctx, appointments); err != nil {
		return err
	}
	total = len(appointments)
	s.logger.Info("appointment updated", logging.Operation("update_single"), slog.String("id", id))
	return nil
}

// UpdateSeriesFrom applies the patch to every occurrence of the series at
// or after the (fromDate, fromTime) cutoff: strictly later dates are always
// included, and on the cutoff date itself an occurrence is included when
// its start time is >= fromTime. Occurrences before the cutoff are left
// untouched. The patch cannot alter the occurrence date; see Patch.
//
// Both comparisons are byte-wise on the canonical zero-padded layouts, so
// no locale-aware parsing is involved.
func (s *Service) UpdateSeriesFrom(ctx context.Context, seriesID, fromDate, fromTime string, patch Patch) (err error) {
	start := time.Now()
	total := 0
	defer func() { s.observe(ctx, "update_series", start, total, err) }()

	appointments, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	patched := 0
	for i := range appointments {
		a := &appointments[i]
		if a.SeriesID != seriesID {
			continue
		}
		afterDate := a.Date > fromDate
		sameDateFromTime := a.Date == fromDate && a.StartTime >= fromTime
		if afterDate || sameDateFromTime {
			patch.apply(a, false)
			patched++
		}
	}

	if err := s.store.Save(ctx, appointments); err != nil {
		return err
	}
	total = len(appointments)
	s.logger.Info("series updated",
		logging.Operation("update_series"),
		slog.String("series_id", seriesID),
		slog.Int("patched", patched),
	)
	return nil
}

// DeleteSingle removes exactly the occurrence with the given id. Returns
// ErrNotFound when the id is unknown.
func (s *Service) DeleteSingle(ctx context.Context, id string) (err error) {
	start := time.Now()
	total := 0
	defer func() { s.observe(ctx, "delete_single", start, total, err) }()

	appointments, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	kept := appointments[:0]
	found := false
	for _, a := range appointments {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return ErrNotFound
	}

	if err := s.store.Save(ctx, kept); err != nil {
		return err
	}
	total = len(kept)
	s.logger.Info("appointment deleted", logging.Operation("delete_single"), slog.String("id", id))
	return nil
}

// DeleteSeries removes every occurrence sharing the given series id.
// Deleting a series that no longer exists is a no-op, so the operation is
// idempotent.
func (s *Service) DeleteSeries(ctx context.Context, seriesID string) (err error) {
	start := time.Now()
	total := 0
	defer func() { s.observe(ctx, "delete_series", start, total, err) }()

	appointments, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	kept := appointments[:0]
	for _, a := range appointments {
		if a.SeriesID == seriesID {
			continue
		}
		kept = append(kept, a)
	}
	removed := len(appointments) - len(kept)

	if err := s.store.Save(ctx, kept); err != nil {
		return err
	}
	total = len(kept)
	s.logger.Info("series deleted",
		logging.Operation("delete_series"),
		slog.String("series_id", seriesID),
		slog.Int("removed", removed),
	)
	return nil
}
