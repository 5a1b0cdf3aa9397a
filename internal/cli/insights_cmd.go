package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/prioritas/internal/cli/formatter"
	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/report"
	"github.com/alexanderramin/prioritas/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newInsightsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "insights",
		Aliases: []string{"insight"},
		Short:   "Generate, browse and export insight reports",
	}
	cmd.AddCommand(
		newInsightsGenerateCmd(app),
		newInsightsListCmd(app),
		newInsightsShowCmd(app),
		newInsightsExportCmd(app),
		newInsightsRemoveCmd(app),
	)
	return cmd
}

func newInsightsGenerateCmd(app *App) *cobra.Command {
	var offline, roadmap bool
	var model string

	cmd := &cobra.Command{
		Use:   "generate PROJECT",
		Short: "Analyze a project's ideas and save the report as a new version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			req := service.GenerateRequest{
				ProjectID: p.ID,
				OwnerID:   app.UserID,
				Offline:   offline,
				Roadmap:   roadmap,
				Model:     model,
			}
			run := func(ctx context.Context) (*domain.InsightRecord, error) {
				return app.Insights.Generate(ctx, req)
			}

			var rec *domain.InsightRecord
			if app.interactive() && !offline {
				rec, err = runWithProgress(cmd, fmt.Sprintf("Analyzing %s…", p.Name), run)
			} else {
				rec, err = run(cmd.Context())
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInsight(rec))
			fmt.Fprintf(cmd.OutOrStdout(), "\nSaved as version %d (%s)\n", rec.Version, formatter.TruncID(rec.ID))
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "Derive the report from matrix placement without a model")
	cmd.Flags().BoolVar(&roadmap, "roadmap", false, "Focus the report on a phased roadmap")
	cmd.Flags().StringVar(&model, "model", "", "Model to ask instead of the configured one")
	return cmd
}

func runWithProgress(cmd *cobra.Command, label string, run generateFunc) (*domain.InsightRecord, error) {
	m := newProgressModel(cmd.Context(), label, run)
	final, err := tea.NewProgram(m,
		tea.WithContext(cmd.Context()),
		tea.WithOutput(cmd.ErrOrStderr()),
	).Run()
	if err != nil {
		return nil, err
	}
	return final.(*progressModel).result()
}

func newInsightsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list PROJECT",
		Aliases: []string{"ls", "history"},
		Short:   "List saved report versions",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			records, err := app.Insights.List(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInsightList(records, time.Now()))
			return nil
		},
	}
}

func newInsightsShowCmd(app *App) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "show PROJECT",
		Short: "Print a saved report (latest unless --id is given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			rec, err := resolveInsight(cmd.Context(), app, p.ID, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInsight(rec))
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Report ID or prefix")
	return cmd
}

func newInsightsExportCmd(app *App) *cobra.Command {
	var id, variant, styleFile, out string

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Render a saved report to PDF",
		Long: `Render a saved report to PDF. The latest version is used unless --id is
given. --variant picks a layout (insights or roadmap); --style-file loads
variants from a YAML file instead of the built-in ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := report.LoadStyle(styleFile, variant)
			if err != nil {
				return err
			}
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			rec, err := resolveInsight(cmd.Context(), app, p.ID, id)
			if err != nil {
				return err
			}
			res, err := app.Insights.ExportPDF(cmd.Context(), service.PDFRequest{
				InsightID: rec.ID,
				ProjectID: p.ID,
				Style:     style,
			})
			if err != nil {
				return err
			}
			path, err := writeExport(res, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported version %d to %s\n", rec.Version, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Report ID or prefix (default: latest)")
	cmd.Flags().StringVar(&variant, "variant", report.VariantInsights, "Layout: insights or roadmap")
	cmd.Flags().StringVar(&styleFile, "style-file", "", "YAML file with report styles")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file or directory")
	return cmd
}

func newInsightsRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove PROJECT ID",
		Aliases: []string{"rm"},
		Short:   "Delete one saved report version",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			rec, err := resolveInsight(cmd.Context(), app, p.ID, args[1])
			if err != nil {
				return err
			}
			ok, err := confirm(app, fmt.Sprintf("Delete %s v%d?", rec.Name, rec.Version), yes)
			if err != nil || !ok {
				return err
			}
			if err := app.Insights.Delete(cmd.Context(), rec.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s v%d\n", rec.Name, rec.Version)
			return nil
		},
	}
	addYesFlag(cmd.Flags(), &yes)
	return cmd
}
