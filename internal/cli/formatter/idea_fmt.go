package formatter

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/prioritas/internal/domain"
)

// FormatIdeaList renders ideas grouped by quadrant, most actionable first.
func FormatIdeaList(ideas []*domain.Idea) string {
	if len(ideas) == 0 {
		return Dim("No ideas in this project.") + "\n"
	}
	sorted := make([]*domain.Idea, len(ideas))
	copy(sorted, ideas)
	rank := map[domain.Quadrant]int{}
	for i, q := range quadrants {
		rank[q] = i
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		return rank[sorted[a].Quadrant()] < rank[sorted[b].Quadrant()]
	})

	headers := []string{"ID", "TITLE", "PRIORITY", "QUADRANT", "POSITION"}
	rows := make([][]string, 0, len(sorted))
	for _, i := range sorted {
		rows = append(rows, []string{
			Dim(TruncID(i.ID)),
			Truncate(i.Content, 48),
			PriorityStyle(i.Priority).Render(string(i.Priority)),
			QuadrantStyle(i.Quadrant()).Render(QuadrantLabel(i.Quadrant())),
			fmt.Sprintf("%d,%d", i.X, i.Y),
		})
	}
	return RenderTable(headers, rows) + FormatQuadrantSummary(ideas) + "\n"
}

// FormatIdea is the one-line confirmation shown after add or move.
func FormatIdea(i *domain.Idea) string {
	return fmt.Sprintf("%s %s  %s  %s (%d,%d)",
		StyleGreen.Render("✔"),
		StyleBold.Render(i.Content),
		PriorityStyle(i.Priority).Render(string(i.Priority)),
		QuadrantStyle(i.Quadrant()).Render(QuadrantLabel(i.Quadrant())),
		i.X, i.Y)
}
