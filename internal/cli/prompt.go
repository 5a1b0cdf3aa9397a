package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/prioritas/internal/cli/formatter"
	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"
)

func prioritasHuhTheme() *huh.Theme {
	t := huh.ThemeBase()
	accent := lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	dim := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	fg := lipgloss.NewStyle().Foreground(formatter.ColorFg)

	t.Focused.Title = accent.Bold(true)
	t.Focused.Description = dim
	t.Focused.SelectSelector = accent
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = fg
	t.Focused.FocusedButton = fg.Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = dim.Padding(0, 1)
	t.Focused.TextInput.Cursor = accent
	t.Focused.TextInput.Prompt = accent
	t.Focused.TextInput.Text = fg
	t.Focused.TextInput.Placeholder = dim

	t.Blurred.Title = dim
	t.Blurred.SelectSelector = dim
	t.Blurred.SelectedOption = dim
	t.Blurred.UnselectedOption = dim
	t.Blurred.TextInput.Prompt = dim
	t.Blurred.TextInput.Text = dim
	return t
}

// addYesFlag registers the --yes/-y flag that skips confirm.
func addYesFlag(fs *pflag.FlagSet, yes *bool) {
	fs.BoolVarP(yes, "yes", "y", false, "Skip the confirmation prompt")
}

// confirm asks a yes/no question. Without a terminal nothing is asked and
// the caller must pass --yes.
func confirm(app *App, title string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !app.interactive() {
		return false, fmt.Errorf("refusing to continue without confirmation; pass --yes")
	}
	ok := false
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).WithTheme(prioritasHuhTheme()).WithShowHelp(false).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// promptIdea fills in the fields of a new idea that were not given as
// flags.
func promptIdea(idea *domain.Idea) error {
	options := make([]huh.Option[domain.Priority], 0, len(domain.AllPriorities))
	for _, p := range domain.AllPriorities {
		options = append(options, huh.NewOption(string(p), p))
	}
	x, y := strconv.Itoa(idea.X), strconv.Itoa(idea.Y)
	number := func(s string) error {
		if _, err := strconv.Atoi(s); err != nil {
			return fmt.Errorf("enter a whole number")
		}
		return nil
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&idea.Content).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewText().Title("Details").Value(&idea.Details),
			huh.NewSelect[domain.Priority]().Title("Priority").Options(options...).Value(&idea.Priority),
		),
		huh.NewGroup(
			huh.NewInput().Title("Effort (x)").Description("Left is low effort. Quadrants split at 260.").Value(&x).Validate(number),
			huh.NewInput().Title("Value (y)").Description("Top is high value.").Value(&y).Validate(number),
		),
	).WithTheme(prioritasHuhTheme()).WithShowHelp(false).Run()
	if err != nil {
		return err
	}
	idea.X, _ = strconv.Atoi(x)
	idea.Y, _ = strconv.Atoi(y)
	return nil
}
