package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty book with example appointments",
		Long: `Populate the appointment book with a handful of example appointments
spread over the coming week. Seeding happens at most once per data
directory; a book that was already seeded is left alone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			seeded, created, err := seedBook(cmd, a)
			if err != nil {
				return err
			}
			if !created {
				fmt.Fprintln(cmd.OutOrStdout(), "Book was already seeded, nothing to do.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d example appointments.\n", seeded)
			return nil
		},
	}

	return cmd
}

func seedBook(cmd *cobra.Command, a *app) (int, bool, error) {
	appointments, created, err := a.service.SeedExampleData(cmd.Context())
	if err != nil {
		return 0, false, fmt.Errorf("seeding failed: %w", err)
	}
	return len(appointments), created, nil
}
