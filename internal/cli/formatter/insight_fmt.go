package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatInsightList renders the saved versions of a project's reports,
// newest first as returned by the service.
func FormatInsightList(records []*domain.InsightRecord, now time.Time) string {
	if len(records) == 0 {
		return Dim("No saved insights. Generate one with: prioritas insights generate PROJECT") + "\n"
	}
	headers := []string{"ID", "VERSION", "NAME", "IDEAS", "CREATED"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			Dim(TruncID(r.ID)),
			fmt.Sprintf("v%d", r.Version),
			Truncate(r.Name, 40),
			fmt.Sprintf("%d", r.IdeaCount),
			RelativeDateFrom(r.CreatedAt, now),
		})
	}
	return RenderTable(headers, rows)
}

// FormatInsight renders a report for the terminal. Absent sections are
// skipped; absent fields inside a present section read "Not specified".
func FormatInsight(rec *domain.InsightRecord) string {
	r := &rec.Report
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", StyleBold.Render(rec.Name), Dim(fmt.Sprintf("v%d · %d ideas · %s", rec.Version, rec.IdeaCount, HumanTimestamp(rec.CreatedAt))))

	section := func(title string) {
		b.WriteString("\n" + Header(title) + "\n")
	}

	if s := domain.StrOr(r.ExecutiveSummary, ""); s != "" {
		section("Executive summary")
		b.WriteString(s + "\n")
	}

	if len(r.KeyInsights) > 0 {
		section("Key insights")
		for i, k := range r.KeyInsights {
			fmt.Fprintf(&b, "%s %s\n", StyleHeader.Render(fmt.Sprintf("%d.", i+1)), domain.StrOr(k.Insight, notSpecified))
			fmt.Fprintf(&b, "   %s\n", Dim(domain.StrOr(k.Impact, "Impact not assessed")))
		}
	}

	if r.PriorityRecommendations != nil {
		recs := r.Recommendations()
		section("Priority recommendations")
		bulletGroup(&b, StyleGreen, "Immediate", recs.Immediate)
		bulletGroup(&b, StyleYellow, "Short term", recs.ShortTerm)
		bulletGroup(&b, StyleBlue, "Long term", recs.LongTerm)
	}

	if r.RiskAssessment != nil {
		risk := r.Risks()
		section("Risk assessment")
		bulletGroup(&b, StyleRed, "High risk", risk.HighRisk)
		bulletGroup(&b, StyleGreen, "Opportunities", risk.Opportunities)
		bulletGroup(&b, StyleRed, "Risks", risk.Risks)
		bulletGroup(&b, StyleAqua, "Mitigations", risk.Mitigations)
	}

	if len(r.SuggestedRoadmap) > 0 {
		section("Suggested roadmap")
		for _, p := range r.SuggestedRoadmap {
			fmt.Fprintf(&b, "%s %s\n", StyleBold.Render(domain.StrOr(p.Phase, notSpecified)), Dim("("+domain.StrOr(p.Duration, "TBD")+")"))
			if f := domain.StrOr(p.Focus, ""); f != "" {
				fmt.Fprintf(&b, "  %s\n", f)
			}
			for _, idea := range domain.NonEmpty(p.Ideas) {
				fmt.Fprintf(&b, "  • %s\n", idea)
			}
		}
	}

	if r.ResourceAllocation != nil {
		res := r.Resources()
		section("Resource allocation")
		fmt.Fprintf(&b, "%s %s\n", StyleGreen.Render("Quick wins:"), domain.StrOr(res.QuickWins, notSpecified))
		fmt.Fprintf(&b, "%s %s\n", StyleBlue.Render("Strategic: "), domain.StrOr(res.Strategic, notSpecified))
	}

	if len(r.FutureEnhancements) > 0 {
		section("Future enhancements")
		for _, f := range r.FutureEnhancements {
			fmt.Fprintf(&b, "• %s", StyleBold.Render(domain.StrOr(f.Title, notSpecified)))
			if t := domain.StrOr(f.Timeline, ""); t != "" {
				b.WriteString(" " + Dim("["+t+"]"))
			}
			b.WriteString("\n")
			if d := domain.StrOr(f.Description, ""); d != "" {
				fmt.Fprintf(&b, "  %s\n", d)
			}
		}
	}

	if steps := domain.NonEmpty(r.NextSteps); len(steps) > 0 {
		section("Next steps")
		for i, s := range steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
	}

	if r.IsEmpty() {
		b.WriteString("\n" + Dim("This report has no content.") + "\n")
	}
	return b.String()
}

const notSpecified = "Not specified"

func bulletGroup(b *strings.Builder, color lipgloss.Style, label string, items []string) {
	items = domain.NonEmpty(items)
	if len(items) == 0 {
		return
	}
	b.WriteString(color.Render(label) + "\n")
	for _, it := range items {
		fmt.Fprintf(b, "  • %s\n", it)
	}
}
