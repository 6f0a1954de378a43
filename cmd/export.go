package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the appointment book",
		Long: `Export the appointment book.

Formats:
  json  Canonical backup format, restorable with 'psiagenda import'
  csv   Semicolon-delimited spreadsheet report
  ics   iCalendar feed for calendar applications

JSON and CSV exports reset the backup reminder clock; the ICS feed is a
convenience view and does not count as a backup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			ctx := cmd.Context()
			switch format {
			case "json":
				err = a.backups.ExportJSON(ctx, w)
			case "csv":
				err = a.backups.ExportCSV(ctx, w)
			case "ics":
				err = a.backups.ExportICS(ctx, w, a.cfg.SessionMinutes)
			default:
				return fmt.Errorf("unsupported format %q (supported: json, csv, ics)", format)
			}
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			if output != "" && output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", format, output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Export format: json, csv or ics")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
