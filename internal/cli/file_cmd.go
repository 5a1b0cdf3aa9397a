package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/prioritas/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newFileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "file",
		Aliases: []string{"files"},
		Short:   "Attach supporting documents to a project",
	}
	cmd.AddCommand(newFileAttachCmd(app), newFileListCmd(app), newFileRemoveCmd(app))
	return cmd
}

func newFileAttachCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "attach PROJECT PATH",
		Short: "Attach a file; PDF and text files get a text preview",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			f, err := app.Files.Attach(cmd.Context(), p.ID, args[1], app.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Attached %s (%s, %s)\n", f.Name, f.MimeType, formatter.HumanBytes(f.SizeBytes))
			if f.ContentPreview == "" {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No text preview available."))
			}
			return nil
		},
	}
}

func newFileListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list PROJECT",
		Aliases: []string{"ls"},
		Short:   "List attached files",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			files, err := app.Files.ListByProject(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFileList(files, time.Now()))
			return nil
		},
	}
}

func newFileRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove PROJECT FILE",
		Aliases: []string{"rm"},
		Short:   "Detach a file",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			f, err := resolveFile(cmd.Context(), app, p.ID, args[1])
			if err != nil {
				return err
			}
			ok, err := confirm(app, fmt.Sprintf("Remove %s?", f.Name), yes)
			if err != nil || !ok {
				return err
			}
			if err := app.Files.Delete(cmd.Context(), f.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", f.Name)
			return nil
		},
	}
	addYesFlag(cmd.Flags(), &yes)
	return cmd
}
