package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prioritas/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status [PROJECT]",
		Short: "Sign in and show your workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			ws, err := app.Workspace.Open(cmd.Context(), app.UserID, ref)
			if err != nil {
				return err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%s %s\n", formatter.Dim("User:    "), formatter.Bold(ws.UserID))
			fmt.Fprintf(&b, "%s %d\n", formatter.Dim("Projects:"), ws.ProjectCount)
			if ws.Project != nil {
				fmt.Fprintf(&b, "%s %s [%s]\n", formatter.Dim("Open:    "), ws.Project.Name, ws.Project.DisplayID())
				b.WriteString(formatter.FormatQuadrantSummary(ws.Ideas))
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("Workspace", strings.TrimRight(b.String(), "\n")))
			return nil
		},
	}
}

func newPerfCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "perf",
		Short: "Measure and validate timings",
	}
	cmd.AddCommand(newPerfAuthCmd(app))
	return cmd
}

func newPerfAuthCmd(app *App) *cobra.Command {
	var runs int

	cmd := &cobra.Command{
		Use:   "auth [PROJECT]",
		Short: "Run the sign-in flow several times and score it against its targets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			app.Counters.SetEnabled(true)

			failures := 0
			for range runs {
				if _, err := app.Workspace.Open(cmd.Context(), app.UserID, ref); err != nil {
					failures++
					if cmd.Context().Err() != nil {
						return err
					}
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Ran the sign-in flow %d times (%d failed)\n\n", runs, failures)
			fmt.Fprint(out, formatter.FormatPerfStats(app.Counters.Stats()))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatAuthValidation(app.Auth.Validate()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&runs, "runs", "n", 5, "Number of sign-in runs")
	return cmd
}
