package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"psiagenda/internal/schedule"
)

func newEditCmd() *cobra.Command {
	var (
		name      string
		phone     string
		email     string
		date      string
		startTime string
		notes     string
		series    bool
		fromDate  string
		fromTime  string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an appointment or part of a series",
		Long: `Edit a single appointment by id. Only the fields given as flags change.

With --series the argument is a series id instead, and every occurrence
at or after the --from-date/--from-time cutoff is updated. A series edit
may move the time of day but never the date.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := schedule.Patch{}
			if cmd.Flags().Changed("name") {
				patch.PatientName = &name
			}
			if cmd.Flags().Changed("phone") {
				patch.Phone = &phone
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}
			if cmd.Flags().Changed("date") {
				patch.Date = &date
			}
			if cmd.Flags().Changed("time") {
				patch.StartTime = &startTime
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}

			if series {
				if fromDate == "" || fromTime == "" {
					return fmt.Errorf("--series requires --from-date and --from-time")
				}
				if patch.Date != nil {
					return fmt.Errorf("--date cannot be used with --series; series occurrences keep their dates")
				}
			}

			a, err := newApp()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if series {
				if err := a.service.UpdateSeriesFrom(ctx, args[0], fromDate, fromTime, patch); err != nil {
					return fmt.Errorf("failed to update series: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated series %s from %s %s\n", args[0], fromDate, fromTime)
			} else {
				if err := a.service.UpdateSingle(ctx, args[0], patch); err != nil {
					if errors.Is(err, schedule.ErrNotFound) {
						return fmt.Errorf("no appointment with id %s", args[0])
					}
					return fmt.Errorf("failed to update appointment: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated appointment %s\n", args[0])
			}

			a.warnIfBackupDue(cmd)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New patient name")
	cmd.Flags().StringVar(&phone, "phone", "", "New phone number")
	cmd.Flags().StringVar(&email, "email", "", "New email address")
	cmd.Flags().StringVar(&date, "date", "", "New date, YYYY-MM-DD (single appointments only)")
	cmd.Flags().StringVar(&startTime, "time", "", "New start time, HH:mm")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")
	cmd.Flags().BoolVar(&series, "series", false, "Treat the argument as a series id")
	cmd.Flags().StringVar(&fromDate, "from-date", "", "Series cutoff date, YYYY-MM-DD")
	cmd.Flags().StringVar(&fromTime, "from-time", "", "Series cutoff time, HH:mm")

	return cmd
}
