package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityStyle colors a priority the way the matrix legend does.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityStrategic:
		return StylePurple
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityInnovation:
		return StyleBlue
	case domain.PriorityLow:
		return StyleDim
	default:
		return StyleYellow
	}
}

// QuadrantStyle colors a matrix quadrant.
func QuadrantStyle(q domain.Quadrant) lipgloss.Style {
	switch q {
	case domain.QuadrantQuickWins:
		return StyleGreen
	case domain.QuadrantStrategic:
		return StyleBlue
	case domain.QuadrantReconsider:
		return StyleYellow
	default:
		return StyleRed
	}
}

// QuadrantLabel is the human name of a quadrant.
func QuadrantLabel(q domain.Quadrant) string {
	switch q {
	case domain.QuadrantQuickWins:
		return "Quick win"
	case domain.QuadrantStrategic:
		return "Strategic"
	case domain.QuadrantReconsider:
		return "Reconsider"
	default:
		return "Avoid"
	}
}

// Header renders an upper-cased section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
