package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/prioritas/internal/domain"
)

// FormatProjectList renders projects as a table.
func FormatProjectList(projects []*domain.Project, now time.Time) string {
	if len(projects) == 0 {
		return Dim("No projects yet. Create one with: prioritas project add NAME --id APP01") + "\n"
	}
	headers := []string{"ID", "NAME", "TYPE", "OWNER", "UPDATED"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			StyleBold.Render(p.DisplayID()),
			Truncate(p.Name, 40),
			Dim(string(p.TypeOrDefault())),
			domainOrDash(p.OwnerID),
			RelativeDateFrom(p.UpdatedAt, now),
		})
	}
	return Header("Projects") + "\n" + RenderTable(headers, rows)
}

// FormatProject renders one project with a quadrant breakdown of its ideas.
func FormatProject(p *domain.Project, ideas []*domain.Idea) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", StyleBold.Render(p.Name), Dim(p.DisplayID()))
	fmt.Fprintf(&b, "%s %s\n", Dim("Type: "), p.TypeOrDefault())
	if p.OwnerID != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Owner:"), p.OwnerID)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", p.Description)
	}
	fmt.Fprintf(&b, "\n%s\n", FormatQuadrantSummary(ideas))
	return RenderBox("Project", strings.TrimRight(b.String(), "\n"))
}

// FormatQuadrantSummary counts ideas per quadrant on one line.
func FormatQuadrantSummary(ideas []*domain.Idea) string {
	counts := map[domain.Quadrant]int{}
	for _, i := range ideas {
		counts[i.Quadrant()]++
	}
	parts := make([]string, 0, len(quadrants))
	for _, q := range quadrants {
		parts = append(parts, QuadrantStyle(q).Render(fmt.Sprintf("%s %d", QuadrantLabel(q), counts[q])))
	}
	return fmt.Sprintf("%d ideas  %s", len(ideas), strings.Join(parts, Dim(" · ")))
}

var quadrants = []domain.Quadrant{
	domain.QuadrantQuickWins,
	domain.QuadrantStrategic,
	domain.QuadrantReconsider,
	domain.QuadrantAvoid,
}

func domainOrDash(s string) string {
	return domain.CoalesceStr(s, Dim("-"))
}
