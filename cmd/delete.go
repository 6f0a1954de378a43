package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"psiagenda/internal/schedule"
)

func newDeleteCmd() *cobra.Command {
	var series bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an appointment or a whole series",
		Long: `Delete a single appointment by id.

With --series the argument is a series id and every occurrence of that
series is removed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if series {
				if err := a.service.DeleteSeries(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to delete series: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted series %s\n", args[0])
			} else {
				if err := a.service.DeleteSingle(ctx, args[0]); err != nil {
					if errors.Is(err, schedule.ErrNotFound) {
						return fmt.Errorf("no appointment with id %s", args[0])
					}
					return fmt.Errorf("failed to delete appointment: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted appointment %s\n", args[0])
			}

			a.warnIfBackupDue(cmd)
			return nil
		},
	}

	cmd.Flags().BoolVar(&series, "series", false, "Treat the argument as a series id")

	return cmd
}
