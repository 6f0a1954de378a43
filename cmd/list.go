package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"psiagenda/internal/schedule"
)

func newListCmd() *cobra.Command {
	var (
		date     string
		month    string
		upcoming int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show appointments",
		Long: `Show appointments in chronological order.

Without flags the whole book is listed. Use --date for a single day,
--month for a calendar month, or --upcoming N for the next N sessions
starting today.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" && month != "" {
				return fmt.Errorf("--date and --month are mutually exclusive")
			}

			a, err := newApp()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var appointments []schedule.Appointment
			switch {
			case date != "":
				appointments, err = a.service.ByDate(ctx, date)
			case month != "":
				appointments, err = a.service.ByMonth(ctx, month)
			case upcoming > 0:
				today := time.Now().Format(schedule.DateLayout)
				appointments, err = a.service.Upcoming(ctx, today, upcoming)
			default:
				appointments, err = a.service.All(ctx)
			}
			if err != nil {
				return fmt.Errorf("failed to list appointments: %w", err)
			}

			if len(appointments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No appointments.")
			} else {
				printAppointments(cmd, appointments)
			}

			a.warnIfBackupDue(cmd)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Show a single day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&month, "month", "", "Show a calendar month (YYYY-MM)")
	cmd.Flags().IntVar(&upcoming, "upcoming", 0, "Show the next N sessions starting today")

	return cmd
}

func printAppointments(cmd *cobra.Command, appointments []schedule.Appointment) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTIME\tPATIENT\tTYPE\tID")
	for _, a := range appointments {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.Date, a.StartTime, a.PatientName, a.Frequency.Label(), a.ID)
	}
	w.Flush()
}
