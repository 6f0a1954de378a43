package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"psiagenda/internal/backup"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore the appointment book from a JSON backup",
		Long: `Restore the appointment book from a JSON backup file produced by
'psiagenda export'. The current book is replaced in full. An invalid
file leaves the existing data untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			a, err := newApp()
			if err != nil {
				return err
			}

			count, err := a.backups.ImportJSON(cmd.Context(), f)
			if err != nil {
				if errors.Is(err, backup.ErrInvalidImport) {
					return fmt.Errorf("%s is not a valid backup file: %w", args[0], err)
				}
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d appointments from %s\n", count, args[0])
			return nil
		},
	}

	return cmd
}
