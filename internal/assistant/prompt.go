package assistant

import (
	"encoding/json"
	"strings"
	"time"

	"psiagenda/internal/schedule"
)

// scheduleEntry is the compact, PII-minimal view of an appointment handed
// to the model as context. Phone numbers and emails stay out of the prompt.
type scheduleEntry struct {
	Patient   string `json:"patient"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Recurring bool   `json:"recurring"`
	Notes     string `json:"notes"`
}

const systemInstructions = `You are a scheduling assistant for a psychologist. You are given the current appointment data as JSON.

CRITICAL instructions:
1. Answer in AT MOST 2 sentences.
2. Be extremely direct and brief.
3. No long greetings or sign-offs.
4. If the answer is a list, use a simple format.
5. Dates in the data are in DD/MM/YYYY format.`

// buildPrompt assembles the system instructions, the schedule context, and
// the practitioner's question into one prompt. Dates are presented
// DD/MM/YYYY, the format the instructions tell the model to expect.
func buildPrompt(question string, appointments []schedule.Appointment, now time.Time) string {
	entries := make([]scheduleEntry, 0, len(appointments))
	for _, a := range appointments {
		entries = append(entries, scheduleEntry{
			Patient:   a.PatientName,
			Date:      promptDate(a.Date),
			Time:      a.StartTime,
			Recurring: a.IsRecurring,
			Notes:     a.Notes,
		})
	}
	contextData, _ := json.Marshal(entries)

	var b strings.Builder
	b.WriteString(systemInstructions)
	b.WriteString("\n\nAppointment data: ")
	b.Write(contextData)
	b.WriteString("\nToday is: ")
	b.WriteString(now.Format("02/01/2006"))
	b.WriteString("\n\nPractitioner's question: ")
	b.WriteString(question)
	return b.String()
}

// promptDate re-formats YYYY-MM-DD as DD/MM/YYYY. Malformed dates pass
// through unchanged.
func promptDate(date string) string {
	parts := strings.SplitN(date, "-", 3)
	if len(parts) != 3 {
		return date
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
