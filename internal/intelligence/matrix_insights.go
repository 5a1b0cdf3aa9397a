package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/llm"
)

// NewMatrixInsightsGenerator returns a generator that derives a report from
// idea placement alone, without a model. It is used for --offline runs.
func NewMatrixInsightsGenerator() InsightsGenerator {
	return matrixGenerator{}
}

type matrixGenerator struct{}

func (matrixGenerator) GenerateInsights(ctx context.Context, req GenerateInsightsRequest) (*domain.InsightsReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(req.Ideas) == 0 {
		return nil, fmt.Errorf("project has no ideas to analyze")
	}
	return DeterministicInsights(req), nil
}

// DeterministicInsights builds a report from quadrant membership. Risk is
// expressed in the highRisk/opportunities layout.
func DeterministicInsights(req GenerateInsightsRequest) *domain.InsightsReport {
	quick := titles(ideasIn(req.Ideas, domain.QuadrantQuickWins))
	strategic := titles(ideasIn(req.Ideas, domain.QuadrantStrategic))
	reconsider := titles(ideasIn(req.Ideas, domain.QuadrantReconsider))
	avoid := titles(ideasIn(req.Ideas, domain.QuadrantAvoid))

	summary := fmt.Sprintf("%s has %d ideas: %d quick wins, %d strategic, %d to reconsider and %d to avoid.",
		domain.CoalesceStr(req.name(), "This project"), len(req.Ideas),
		len(quick), len(strategic), len(reconsider), len(avoid))

	report := &domain.InsightsReport{
		ExecutiveSummary: &summary,
		PriorityRecommendations: &domain.PriorityRecommendations{
			Immediate: quick,
			ShortTerm: strategic,
			LongTerm:  reconsider,
		},
	}

	if len(quick) > 0 {
		report.KeyInsights = append(report.KeyInsights, insight(
			fmt.Sprintf("%d ideas deliver high value for low effort.", len(quick)),
			"Shipping them first builds momentum."))
	}
	if len(strategic) > 0 {
		report.KeyInsights = append(report.KeyInsights, insight(
			fmt.Sprintf("%d strategic ideas need sustained investment.", len(strategic)),
			"They carry most of the long-term value."))
	}
	if share := highPriorityShare(req.Ideas); share > 0.5 {
		report.KeyInsights = append(report.KeyInsights, insight(
			fmt.Sprintf("%.0f%% of ideas are marked high or strategic priority.", share*100),
			"Priorities may need sharper differentiation."))
	}

	if len(avoid) > 0 || len(quick) > 0 {
		report.RiskAssessment = &domain.RiskAssessment{
			HighRisk:      avoid,
			Opportunities: quick,
		}
	}

	report.SuggestedRoadmap = deterministicRoadmap(req.task(), quick, strategic, reconsider)
	if len(quick) > 0 || len(strategic) > 0 {
		report.ResourceAllocation = &domain.ResourceAllocation{
			QuickWins: strPtr(fmt.Sprintf("Small team, %d ideas over the first sprint.", len(quick))),
			Strategic: strPtr(fmt.Sprintf("Dedicated owners for %d larger initiatives.", len(strategic))),
		}
	}

	if len(quick) > 0 {
		report.NextSteps = append(report.NextSteps, "Start with "+quick[0]+".")
	}
	if len(strategic) > 0 {
		report.NextSteps = append(report.NextSteps, "Scope "+strategic[0]+" into milestones.")
	}
	if len(avoid) > 0 {
		report.NextSteps = append(report.NextSteps, fmt.Sprintf("Drop or rethink %d high-effort, low-value ideas.", len(avoid)))
	}
	return report
}

func deterministicRoadmap(task llm.TaskType, quick, strategic, reconsider []string) []domain.RoadmapPhase {
	var phases []domain.RoadmapPhase
	add := func(name, duration, focus string, ideas []string) {
		if len(ideas) == 0 {
			return
		}
		phases = append(phases, domain.RoadmapPhase{
			Phase: strPtr(name), Duration: strPtr(duration), Focus: strPtr(focus), Ideas: ideas,
		})
	}
	add("Phase 1: Quick wins", "2-4 weeks", "Low-effort, high-value delivery", quick)
	add("Phase 2: Strategic bets", "1-3 months", "High-value initiatives", strategic)
	if task == llm.TaskRoadmap {
		add("Phase 3: Backlog review", "Ongoing", "Low-value ideas worth revisiting", reconsider)
	}
	return phases
}

func highPriorityShare(ideas []domain.Idea) float64 {
	if len(ideas) == 0 {
		return 0
	}
	n := 0
	for _, i := range ideas {
		if i.Priority == domain.PriorityHigh || i.Priority == domain.PriorityStrategic {
			n++
		}
	}
	return float64(n) / float64(len(ideas))
}

func titles(ideas []domain.Idea) []string {
	out := make([]string, 0, len(ideas))
	for _, i := range ideas {
		out = append(out, i.Content)
	}
	return out
}

func insight(text, impact string) domain.KeyInsight {
	return domain.KeyInsight{Insight: strPtr(text), Impact: strPtr(impact)}
}

func strPtr(s string) *string { return &s }
