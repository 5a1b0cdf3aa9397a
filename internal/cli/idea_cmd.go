package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/prioritas/internal/cli/formatter"
	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/spf13/cobra"
)

func newIdeaCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "idea",
		Aliases: []string{"ideas"},
		Short:   "Add, list and move ideas on a project's matrix",
	}
	cmd.AddCommand(
		newIdeaAddCmd(app),
		newIdeaListCmd(app),
		newIdeaMoveCmd(app),
		newIdeaRemoveCmd(app),
	)
	return cmd
}

func newIdeaAddCmd(app *App) *cobra.Command {
	var details, priority string
	var x, y int

	cmd := &cobra.Command{
		Use:   "add PROJECT [TITLE]",
		Short: "Add an idea; without a title an interactive form is shown",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			idea := &domain.Idea{
				ProjectID: p.ID,
				Details:   details,
				Priority:  domain.Priority(priority),
				X:         x,
				Y:         y,
				CreatedBy: app.UserID,
			}
			if len(args) == 2 {
				idea.Content = args[1]
			} else {
				if !app.interactive() {
					return fmt.Errorf("idea title is required")
				}
				if err := promptIdea(idea); err != nil {
					return err
				}
			}
			if priority != "" && !domain.ValidPriorities[priority] {
				return fmt.Errorf("unknown priority %q (use low, moderate, high, strategic or innovation)", priority)
			}
			idea.Normalize()

			if err := app.Ideas.Create(cmd.Context(), idea); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatIdea(idea))
			return nil
		},
	}
	cmd.Flags().StringVar(&details, "details", "", "Longer description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, moderate, high, strategic or innovation (default moderate)")
	cmd.Flags().IntVar(&x, "x", domain.DefaultPosition, "Effort position (left is low effort)")
	cmd.Flags().IntVar(&y, "y", domain.DefaultPosition, "Value position (top is high value)")
	return cmd
}

func newIdeaListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list PROJECT",
		Aliases: []string{"ls"},
		Short:   "List a project's ideas by quadrant",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			ideas, err := app.Ideas.ListByProject(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatIdeaList(ideas))
			return nil
		},
	}
}

func newIdeaMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move PROJECT IDEA X Y",
		Short: "Reposition an idea; coordinates are clamped to the matrix",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid x %q: %w", args[2], err)
			}
			y, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("invalid y %q: %w", args[3], err)
			}
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			idea, err := resolveIdea(cmd.Context(), app, p.ID, args[1])
			if err != nil {
				return err
			}
			moved, err := app.Ideas.Move(cmd.Context(), idea.ID, x, y)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatIdea(moved))
			return nil
		},
	}
}

func newIdeaRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove PROJECT IDEA",
		Aliases: []string{"rm"},
		Short:   "Delete an idea",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			idea, err := resolveIdea(cmd.Context(), app, p.ID, args[1])
			if err != nil {
				return err
			}
			ok, err := confirm(app, fmt.Sprintf("Delete %q?", idea.Content), yes)
			if err != nil || !ok {
				return err
			}
			if err := app.Ideas.Delete(cmd.Context(), idea.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted idea %s\n", idea.Content)
			return nil
		},
	}
	addYesFlag(cmd.Flags(), &yes)
	return cmd
}
