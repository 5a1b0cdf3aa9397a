package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/prioritas/internal/perf"
)

// FormatPerfStats renders the counters' per-channel summary.
func FormatPerfStats(stats []perf.ChannelStats) string {
	if len(stats) == 0 {
		return Dim("No timings recorded. Enable them with --perf or PRIORITAS_PERF=1.") + "\n"
	}
	headers := []string{"CHANNEL", "SAMPLES", "AVERAGE", "SUCCESS"}
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Name,
			fmt.Sprintf("%d", s.Count),
			s.Average.Round(time.Millisecond).String(),
			successRate(s.SuccessRate),
		})
	}
	return Header("Performance") + "\n" + RenderTable(headers, rows)
}

func successRate(rate float64) string {
	text := fmt.Sprintf("%.0f%%", rate*100)
	switch {
	case rate >= perf.TargetSuccessRate:
		return StyleGreen.Render(text)
	case rate >= 0.5:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}

// FormatAuthValidation renders the sign-in score with its issues and
// recommendations.
func FormatAuthValidation(v perf.Validation) string {
	var b strings.Builder
	b.WriteString(Header("Sign-in") + "\n")
	b.WriteString(RenderScore(v.Score, 20))
	if v.Passed {
		b.WriteString("  " + StyleGreen.Render("passed") + "\n")
		return b.String()
	}
	b.WriteString("  " + StyleYellow.Render("needs attention") + "\n")
	for _, issue := range v.Issues {
		fmt.Fprintf(&b, "%s %s\n", StyleRed.Render("•"), issue)
	}
	for _, rec := range v.Recommendations {
		fmt.Fprintf(&b, "%s %s\n", StyleBlue.Render("→"), rec)
	}
	return b.String()
}
