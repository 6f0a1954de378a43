package schedule

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"psiagenda/internal/logging"
)

var (
	seedFirstNames = []string{"María", "Juan", "Ana", "Carlos", "Lucía", "Pedro", "Sofía", "Miguel", "Laura", "Diego", "Valentina", "Martín"}
	seedLastNames  = []string{"García", "Rodríguez", "Martínez", "López", "González", "Pérez", "Sánchez", "Romero", "Díaz", "Fernández"}
	seedNotes      = []string{"Generalized anxiety", "First consultation", "Biweekly follow-up", "Couples therapy", "Cognitive assessment", "Mild depression", "Work stress", "Grief", "Career counseling", ""}
)

// SeedExampleData generates ten single appointments within the next seven
// days so a fresh install has something to look at. It runs at most once
// per store: once the seeded flag is set it returns (nil, false, nil), even
// if the user has since deleted every appointment.
func (s *Service) SeedExampleData(ctx context.Context) ([]Appointment, bool, error) {
	seeded, err := s.store.Seeded(ctx)
	if err != nil {
		return nil, false, err
	}
	if seeded {
		return nil, false, nil
	}

	today := s.now()
	created := make([]Appointment, 0, 10)
	for i := 0; i < 10; i++ {
		date := today.AddDate(0, 0, rand.Intn(7))
		hour := 9 + rand.Intn(10) // 09:00 through 18:00
		name := seedFirstNames[rand.Intn(len(seedFirstNames))] + " " + seedLastNames[rand.Intn(len(seedLastNames))]

		created = append(created, Appointment{
			ID:          s.ids.NewID(),
			SeriesID:    s.ids.NewID(),
			PatientName: name,
			Phone:       fmt.Sprintf("11%08d", 10000000+rand.Intn(90000000)),
			Email:       strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@email.com",
			Date:        date.Format(DateLayout),
			StartTime:   fmt.Sprintf("%02d:00", hour),
			IsRecurring: false,
			Notes:       seedNotes[rand.Intn(len(seedNotes))],
		})
	}

	current, err := s.store.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := s.store.Save(ctx, append(current, created...)); err != nil {
		return nil, false, err
	}
	if err := s.store.MarkSeeded(ctx); err != nil {
		return nil, false, err
	}

	s.logger.Info("example data seeded", logging.Operation("seed"))
	return created, true, nil
}
