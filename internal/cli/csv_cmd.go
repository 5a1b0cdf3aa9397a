package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/service"
	"github.com/spf13/cobra"
)

func newCSVCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Import ideas from CSV, export them as CSV or XLSX",
	}
	cmd.AddCommand(newCSVImportCmd(app), newCSVExportCmd(app))
	return cmd
}

func newCSVImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import PROJECT FILE",
		Short: "Import ideas from a CSV file; all rows are added or none are",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			content, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}
			res, err := app.Transfer.ImportCSV(cmd.Context(), p.ID, filepath.Base(args[1]), string(content), app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d ideas into %s", res.Created, p.Name)
			if res.Untitled > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d without a title saved as %q)", res.Untitled, domain.UntitledIdea)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func newCSVExportCmd(app *App) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Export a project's ideas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			var res *service.ExportResult
			switch format {
			case "csv":
				res, err = app.Transfer.ExportCSV(cmd.Context(), p.ID)
			case "xlsx":
				res, err = app.Transfer.ExportXLSX(cmd.Context(), p.ID)
			default:
				return fmt.Errorf("unknown format %q (use csv or xlsx)", format)
			}
			if err != nil {
				return err
			}
			path, err := writeExport(res, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", p.Name, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file or directory (default: generated name in the current directory)")
	return cmd
}
