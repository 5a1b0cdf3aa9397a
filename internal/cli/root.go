package cli

import (
	"fmt"

	"github.com/alexanderramin/prioritas/internal/cli/formatter"
	"github.com/alexanderramin/prioritas/internal/perf"
	"github.com/alexanderramin/prioritas/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings CLI commands run against.
type App struct {
	Projects  service.ProjectService
	Ideas     service.IdeaService
	Transfer  service.TransferService
	Insights  service.InsightService
	Files     service.FileService
	Workspace service.WorkspaceService

	Counters *perf.Counters
	Auth     *perf.AuthMonitor

	// UserID is the default owner and author; --user overrides it.
	UserID string

	// IsInteractive reports whether stdin/stdout are a terminal. Prompts and
	// the progress view are only shown when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the "prioritas" command tree.
func NewRootCmd(app *App) *cobra.Command {
	var showPerf bool

	root := &cobra.Command{
		Use:           "prioritas",
		Short:         "Place ideas on a priority matrix and turn them into reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if showPerf {
				app.Counters.SetEnabled(true)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if showPerf {
				fmt.Fprint(cmd.ErrOrStderr(), "\n"+formatter.FormatPerfStats(app.Counters.Stats()))
			}
		},
	}
	root.PersistentFlags().BoolVar(&showPerf, "perf", false, "Record timings and print them after the command")
	root.PersistentFlags().StringVar(&app.UserID, "user", app.UserID, "User ID recorded as owner and author")

	root.AddCommand(
		newProjectCmd(app),
		newIdeaCmd(app),
		newCSVCmd(app),
		newInsightsCmd(app),
		newFileCmd(app),
		newStatusCmd(app),
		newPerfCmd(app),
	)
	return root
}
