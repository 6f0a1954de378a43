package schedule

import (
	"errors"
	"fmt"
	"time"
)

// Frequency is the recurrence cadence of a series.
type Frequency string

const (
	// FrequencyWeekly repeats every 7 days.
	FrequencyWeekly Frequency = "weekly"
	// FrequencyBiweekly repeats every 14 days.
	FrequencyBiweekly Frequency = "biweekly"
)

// Valid reports whether f is a known recurrence cadence.
func (f Frequency) Valid() bool {
	return f == FrequencyWeekly || f == FrequencyBiweekly
}

// Interval returns the cadence in weeks.
func (f Frequency) Interval() int {
	if f == FrequencyBiweekly {
		return 2
	}
	return 1
}

// Label returns the human-readable recurrence label used in reports.
func (f Frequency) Label() string {
	switch f {
	case FrequencyWeekly:
		return "Weekly"
	case FrequencyBiweekly:
		return "Biweekly"
	default:
		return "One-time"
	}
}

// Appointment is one bookable session (an occurrence). The JSON field names
// are the canonical backup format and must stay stable across versions.
type Appointment struct {
	// ID uniquely identifies this occurrence. Immutable after creation.
	ID string `json:"id"`

	// SeriesID is shared by every occurrence generated from the same
	// recurrence request. A non-recurring appointment is its own singleton
	// series. Immutable after creation, never empty.
	SeriesID string `json:"seriesId"`

	PatientName string `json:"patientName"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`

	// Date is the calendar date in YYYY-MM-DD form.
	Date string `json:"date"`
	// StartTime is the zero-padded 24-hour time of day in HH:mm form.
	StartTime string `json:"startTime"`

	// IsRecurring is true iff this occurrence was generated by a recurrence
	// rule, including the first occurrence of a series.
	IsRecurring bool `json:"isRecurring"`
	// Frequency is set only when IsRecurring is true.
	Frequency Frequency `json:"frequency,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// Patch holds the mutable appointment fields for partial updates. Nil
// pointers leave the corresponding field untouched. Identity fields (ID,
// SeriesID) and recurrence fields are deliberately absent so a patch can
// never corrupt series identity.
type Patch struct {
	PatientName *string
	Phone       *string
	Email       *string
	Date        *string
	StartTime   *string
	Notes       *string
}

// apply merges the patch into a, honoring the allowDate restriction used by
// partial-series edits: a bulk edit may move the time of day but never the
// date, or the occurrences of a series would desynchronize.
func (p Patch) apply(a *Appointment, allowDate bool) {
	if p.PatientName != nil {
		a.PatientName = *p.PatientName
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.Date != nil && allowDate {
		a.Date = *p.Date
	}
	if p.StartTime != nil {
		a.StartTime = *p.StartTime
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
}

// ErrNotFound is returned when an operation references an appointment id
// that is not in the store.
var ErrNotFound = errors.New("appointment not found")

const (
	// DateLayout is the canonical calendar-date layout.
	DateLayout = "2006-01-02"
	// TimeLayout is the canonical time-of-day layout.
	TimeLayout = "15:04"
)

// combineDateTime builds a UTC timestamp from the canonical date and time
// strings. All recurrence arithmetic runs on these synthetic timestamps so
// DST transitions in the practitioner's zone cannot shift occurrence dates.
func combineDateTime(date, startTime string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+startTime, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, startTime, err)
	}
	return t, nil
}

// chronologicalLess orders occurrences by (date, startTime) using byte-wise
// string comparison. Both layouts are zero-padded, so lexicographic order is
// chronological order.
func chronologicalLess(a, b Appointment) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	return a.StartTime < b.StartTime
}
