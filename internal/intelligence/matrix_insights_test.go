package intelligence

import (
	"context"
	"testing"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicInsights_FromQuadrants(t *testing.T) {
	report := DeterministicInsights(GenerateInsightsRequest{ProjectName: "Launchpad", Ideas: sampleIdeas()})

	assert.Equal(t,
		"Launchpad has 4 ideas: 1 quick wins, 1 strategic, 1 to reconsider and 1 to avoid.",
		domain.StrOr(report.ExecutiveSummary, ""))

	recs := report.Recommendations()
	assert.Equal(t, domain.StringList{"Dark mode"}, recs.Immediate)
	assert.Equal(t, domain.StringList{"Rewrite backend"}, recs.ShortTerm)
	assert.Equal(t, domain.StringList{"Confetti"}, recs.LongTerm)

	assert.Equal(t, domain.RiskShapeHighRiskOpps, report.RiskAssessment.Shape())
	assert.Equal(t, domain.StringList{"Blockchain"}, report.Risks().HighRisk)

	require.Len(t, report.SuggestedRoadmap, 2)
	assert.Equal(t, "Phase 1: Quick wins", domain.StrOr(report.SuggestedRoadmap[0].Phase, ""))
	assert.Equal(t, []string{"Start with Dark mode.", "Scope Rewrite backend into milestones.", "Drop or rethink 1 high-effort, low-value ideas."},
		[]string(report.NextSteps))
}

func TestDeterministicInsights_RoadmapAddsBacklogPhase(t *testing.T) {
	report := DeterministicInsights(GenerateInsightsRequest{Ideas: sampleIdeas(), Task: llm.TaskRoadmap})

	require.Len(t, report.SuggestedRoadmap, 3)
	assert.Equal(t, domain.StringList{"Confetti"}, report.SuggestedRoadmap[2].Ideas)
}

func TestDeterministicInsights_SkipsEmptySections(t *testing.T) {
	ideas := []domain.Idea{{Content: "Only", Priority: domain.PriorityLow, X: 100, Y: 500}}
	report := DeterministicInsights(GenerateInsightsRequest{Ideas: ideas})

	assert.Nil(t, report.RiskAssessment)
	assert.Nil(t, report.ResourceAllocation)
	assert.Empty(t, report.SuggestedRoadmap)
	assert.Empty(t, report.KeyInsights)
	assert.False(t, report.IsEmpty())
}

func TestDeterministicInsights_FlagsPriorityInflation(t *testing.T) {
	ideas := []domain.Idea{
		{Content: "A", Priority: domain.PriorityHigh, X: 100, Y: 100},
		{Content: "B", Priority: domain.PriorityStrategic, X: 100, Y: 100},
		{Content: "C", Priority: domain.PriorityLow, X: 100, Y: 100},
	}
	report := DeterministicInsights(GenerateInsightsRequest{Ideas: ideas})

	var texts []string
	for _, k := range report.KeyInsights {
		texts = append(texts, domain.StrOr(k.Insight, ""))
	}
	assert.Contains(t, texts, "67% of ideas are marked high or strategic priority.")
}

func TestMatrixGenerator_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMatrixInsightsGenerator().GenerateInsights(ctx, GenerateInsightsRequest{Ideas: sampleIdeas()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatrixGenerator_NoIdeas(t *testing.T) {
	_, err := NewMatrixInsightsGenerator().GenerateInsights(context.Background(), GenerateInsightsRequest{})
	assert.Error(t, err)
}
