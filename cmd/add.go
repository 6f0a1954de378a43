package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"psiagenda/internal/schedule"
)

func newAddCmd() *cobra.Command {
	var (
		name      string
		date      string
		startTime string
		phone     string
		email     string
		notes     string
		frequency string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an appointment or a recurring series",
		Long: `Add an appointment. With --frequency the appointment expands into a
recurring series: one occurrence per cadence step, from the given date
through the next six months.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var freq schedule.Frequency
			if frequency != "" {
				freq = schedule.Frequency(frequency)
				if !freq.Valid() {
					return fmt.Errorf("invalid frequency %q (expected weekly or biweekly)", frequency)
				}
			}

			a, err := newApp()
			if err != nil {
				return err
			}

			template := schedule.Appointment{
				PatientName: name,
				Phone:       phone,
				Email:       email,
				Date:        date,
				StartTime:   startTime,
				Notes:       notes,
			}

			created, err := a.service.Create(cmd.Context(), template, freq)
			if err != nil {
				return fmt.Errorf("failed to create appointment: %w", err)
			}

			if len(created) == 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "Created appointment %s on %s at %s\n", created[0].ID, created[0].Date, created[0].StartTime)
			} else {
				last := created[len(created)-1]
				fmt.Fprintf(cmd.OutOrStdout(), "Created series %s: %d sessions from %s through %s\n",
					created[0].SeriesID, len(created), created[0].Date, last.Date)
			}

			a.warnIfBackupDue(cmd)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Patient name (required)")
	cmd.Flags().StringVar(&date, "date", "", "Date of the first session, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&startTime, "time", "", "Start time, HH:mm (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Patient phone number")
	cmd.Flags().StringVar(&email, "email", "", "Patient email address")
	cmd.Flags().StringVar(&notes, "notes", "", "Session notes")
	cmd.Flags().StringVar(&frequency, "frequency", "", "Recurrence cadence: weekly or biweekly")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}
