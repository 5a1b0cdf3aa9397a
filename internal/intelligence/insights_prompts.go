package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/llm"
)

const insightsSystemPrompt = `You are a strategy analyst for Prioritas, a tool that places ideas on a 2x2 priority matrix.
The horizontal axis is effort (left = low effort), the vertical axis is value (top = high value).
Quadrants: quick_wins (high value, low effort), strategic (high value, high effort),
reconsider (low value, low effort), avoid (low value, high effort).

Analyze the ideas you are given and respond with ONLY a JSON object of this shape.
Every field is optional; omit what you cannot support with the ideas provided.

{
  "executiveSummary": "2-4 sentences",
  "keyInsights": [{"insight": "...", "impact": "..."}],
  "priorityRecommendations": {"immediate": ["..."], "shortTerm": ["..."], "longTerm": ["..."]},
  "riskAssessment": {"risks": ["..."], "mitigations": ["..."]},
  "suggestedRoadmap": [{"phase": "...", "duration": "...", "focus": "...", "ideas": ["..."]}],
  "resourceAllocation": {"quickWins": "...", "strategic": "..."},
  "futureEnhancements": [{"title": "...", "description": "...", "relatedIdea": "...", "impact": "...", "timeline": "..."}],
  "nextSteps": ["..."]
}

Refer to ideas by their titles. Do not invent ideas that are not listed.`

const roadmapSystemPrompt = `You are a delivery planner for Prioritas, a tool that places ideas on a 2x2 priority matrix.
Quick wins are high value and low effort; strategic ideas are high value and high effort.

Turn the ideas you are given into a phased roadmap. Respond with ONLY a JSON object:

{
  "executiveSummary": "1-2 sentences describing the overall sequencing",
  "suggestedRoadmap": [{"phase": "...", "duration": "...", "focus": "...", "ideas": ["..."]}],
  "resourceAllocation": {"quickWins": "...", "strategic": "..."},
  "nextSteps": ["..."]
}

Use between two and five phases. Every idea title must appear in at most one phase.`

var projectFraming = map[domain.ProjectType]string{
	domain.ProjectSoftware:   "This is a software project: weigh technical debt, delivery risk and user-facing value.",
	domain.ProjectProduct:    "This is a product development project: weigh market fit, differentiation and time to market.",
	domain.ProjectMarketing:  "This is a marketing project: weigh reach, conversion and campaign timing.",
	domain.ProjectBusiness:   "This is a business plan: weigh revenue potential, cost and competitive position.",
	domain.ProjectOperations: "This is an operations project: weigh efficiency gains, reliability and change cost.",
	domain.ProjectResearch:   "This is a research project: weigh learning value, feasibility and dependencies between studies.",
}

func systemPromptFor(task llm.TaskType) string {
	if task == llm.TaskRoadmap {
		return roadmapSystemPrompt
	}
	return insightsSystemPrompt
}

// buildInsightsPrompt lists the ideas grouped by quadrant so the model sees
// the matrix placement the user chose.
func buildInsightsPrompt(req GenerateInsightsRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Project: %s\n", domain.CoalesceStr(req.name(), "Untitled project"))
	fmt.Fprintf(&b, "Project type: %s\n", req.projectType())
	if framing, ok := projectFraming[req.projectType()]; ok {
		b.WriteString(framing + "\n")
	}
	if req.Project != nil && req.Project.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", req.Project.Description)
	}
	fmt.Fprintf(&b, "\n%d ideas:\n", len(req.Ideas))

	for _, q := range quadrantOrder {
		group := ideasIn(req.Ideas, q)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n[%s]\n", q)
		for _, idea := range group {
			fmt.Fprintf(&b, "- %s (priority: %s)", idea.Content, idea.Priority)
			if d := strings.TrimSpace(idea.Details); d != "" {
				fmt.Fprintf(&b, ": %s", d)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

var quadrantOrder = []domain.Quadrant{
	domain.QuadrantQuickWins,
	domain.QuadrantStrategic,
	domain.QuadrantReconsider,
	domain.QuadrantAvoid,
}

func ideasIn(ideas []domain.Idea, q domain.Quadrant) []domain.Idea {
	var out []domain.Idea
	for i := range ideas {
		if ideas[i].Quadrant() == q {
			out = append(out, ideas[i])
		}
	}
	return out
}
