package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the AI assistant about the schedule",
		Long: `Ask a natural-language question about the schedule, answered by the
configured Gemini model. The whole appointment book is provided as
context, without patient contact details.

Requires an API key via GEMINI_API_KEY or gemini.api_key in the config
file.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if a.assistant == nil {
				return fmt.Errorf("no Gemini API key configured; set GEMINI_API_KEY or gemini.api_key in the config file")
			}

			ctx := cmd.Context()
			appointments, err := a.service.All(ctx)
			if err != nil {
				return fmt.Errorf("failed to load appointments: %w", err)
			}

			answer, err := a.assistant.Ask(ctx, strings.Join(args, " "), appointments)
			if err != nil {
				return fmt.Errorf("assistant query failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	return cmd
}
