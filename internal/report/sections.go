package report

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prioritas/internal/domain"
)

// Section is one declarative block of a report: a title, the text shown
// when the data is missing, and how to draw it when present.
type Section struct {
	Title       string
	Placeholder string
	Present     func(r *domain.InsightsReport, m Meta) bool
	Render      func(c *Canvas, r *domain.InsightsReport, m Meta)
}

// Placeholders for missing values inside a present section.
const (
	missingText     = "Not specified"
	missingImpact   = "Impact not assessed"
	missingDuration = "TBD"
)

// SectionsFor returns the section list for a built-in variant. Unknown
// variants get the insights layout.
func SectionsFor(variant string) []Section {
	if variant == VariantRoadmap {
		return RoadmapSections()
	}
	return InsightsSections()
}

func InsightsSections() []Section {
	return []Section{
		executiveSummary,
		keyInsights,
		priorityRecommendations,
		riskAssessment,
		roadmapTable,
		resourceAllocation,
		futureEnhancements,
		nextSteps,
		supportingDocuments,
	}
}

func RoadmapSections() []Section {
	return []Section{
		{
			Title:       "Roadmap Overview",
			Placeholder: "No overview was provided for this roadmap.",
			Present:     executiveSummary.Present,
			Render:      executiveSummary.Render,
		},
		roadmapTable,
		priorityTimeline,
		resourceAllocation,
		nextSteps,
	}
}

var executiveSummary = Section{
	Title:       "Executive Summary",
	Placeholder: "No executive summary was provided.",
	Present: func(r *domain.InsightsReport, _ Meta) bool {
		return domain.StrOr(r.ExecutiveSummary, "") != ""
	},
	Render: func(c *Canvas, r *domain.InsightsReport, _ Meta) {
		c.Paragraph(domain.StrOr(r.ExecutiveSummary, ""), Regular, c.st.Colors.Text)
	},
}

var keyInsights = Section{
	Title:       "Key Insights",
	Placeholder: "No key insights were identified.",
	Present: func(r *domain.InsightsReport, _ Meta) bool {
		return len(r.KeyInsights) > 0
	},
	Render: func(c *Canvas, r *domain.InsightsReport, _ Meta) {
		for i, ki := range r.KeyInsights {
			c.Card(i+1,
				domain.StrOr(ki.Insight, "Insight details unavailable"),
				"Impact: "+domain.StrOr(ki.Impact, missingImpact),
				c.st.PaletteColor(i))
		}
	},
}

var priorityRecommendations = Section{
	Title:       "Priority Recommendations",
	Placeholder: "No priority recommendations were provided.",
	Present: func(r *domain.InsightsReport, _ Meta) bool {
		rec := r.Recommendations()
		return len(rec.Immediate)+len(rec.ShortTerm)+len(rec.LongTerm) > 0
	},
	Render: func(c *Canvas, r *domain.InsightsReport, _ Meta) {
		rec := r.Recommendations()
		groups := []struct {
			label string
			items domain.StringList
		}{
			{"Immediate (next 30 days)", rec.Immediate},
			{"Short term (1-3 months)", rec.ShortTerm},
			{"Long term (3+ months)", rec.LongTerm},
		}
		for i, g := range groups {
			c.Subheading(g.label, c.st.PaletteColor(i))
			if len(g.items) == 0 {
				c.Placeholder("None listed.")
				continue
			}
			c.Bullets(g.items, false)
		}
	},
}

// riskAssessment draws whichever risk layout the report carries. Both
// {highRisk, opportunities} and {risks, mitigations} are rendered when
// present, each under its own label.
var riskAssessment = Section{
	Title:       "Risk Assessment",
	Placeholder: "No risk assessment was provided.",
	Present: func(r *domain.InsightsReport, _ Meta) bool {
		return r.RiskAssessment.Shape() != domain.RiskShapeNone
	},
	Render: func(c *Canvas, r *domain.InsightsReport, _ Meta) {
		risks := r.Risks()
		danger := Color{R: 220, G: 38, B: 38}
		good := Color{R: 5, G: 150, B: 105}
		groups := []struct {
			label string
			items domain.StringList
			color Color
		}{
			{"High Risk", risks.HighRisk, danger},
			{"Opportunities", risks.Opportunities, good},
			{"Risks", risks.Risks, danger},
			{"Mitigations", risks.Mitigations, good},
		}
		for _, g := range groups {
			if len(g.items) == 0 {
				continue
			}
			c.Subheading(g.label, g.color)
			for _, item := range g.items {
				c.Card(0, "", item, g.color)
			}
		}
	},
}

var roadmapTable = Section{
	Title:       "Suggested Roadmap",
	Placeholder: "No roadmap was suggested.",
	Present: func(r *domain.InsightsReport, _ Meta) bool {
		return len(r.SuggestedRoadmap) > 0
	},
	Render: func(c *Canvas, r *domain.InsightsReport, _ Meta) {
		cols := []Column{
			{Header: "Phase", Weight: 2},
			{Header: "Duration", Weight: 1.2},
			{Header: "Focus", Weight: 2.5},
			{Header: "Ideas", Weight: 3},
		}
		rows := make([][]string, 0, len(r.SuggestedRoadmap))
		for i, ph := range r.SuggestedRoadmap {
			ideas := missingText
			if len(ph.Ideas) > 0 {
				ideas = strings.Join(ph.Ideas, ", ")
			}
			rows = append(rows, []string{
				domain.StrOr(ph.Phase, fmt.Sprintf("Phase %d", i+1)),
				domain.StrOr(ph.Duration, missingDuration),
				domain.StrOr(ph.Focus, missingText),
				ideas,
			})
		}
		c.Table(cols, rows)
	},
}

// priorityTimeline lays the three recommendation horizons side by side.
var priorityTimeline = Section{
	Title:       "Priority Timeline",
	Placeholder: "No priority recommendations were provided.",
	Present:     priorityRecommendations.Present,
	Render: func(c *Canvas, r *domain.InsightsReport, _ Meta) {
		rec := r.Recommendations()
		n := max(len(rec.Immediate), len(rec.ShortTerm), len(rec.LongTerm))
		rows := make([][]string, n)
		for i := range rows {
			rows[i] = []string{at(rec.Immediate, i), at(rec.ShortTerm, i), at(rec.LongTerm, i)}
		}
		c.Table([]Column{
			{Header: "Immediate", Weight: 1},
			{Header: "Short term", Weight: 1},
			{Header: "Long term", Weight: 1},
		}, rows)
	},
}

var resourceAllocation = Section{
	Title:       "Resource Allocation",
	Placeholder: "No resource allocation guidance was provided.",
	Present: func(r *domain.InsightsReport, _ Meta) bool {
		res := r.Resources()
		return domain.StrOr(res.QuickWins, "") != "" || domain.StrOr(res.Strategic, "") != ""
	},
	Render: func(c *Canvas, r *domain.InsightsReport, _ Meta) {
		res := r.Resources()
		c.Card(0, "Quick wins", domain.StrOr(res.QuickWins, missingText), c.st.PaletteColor(1))
		c.Card(0, "Strategic initiatives", domain.StrOr(res.Strategic, missingText), c.st.PaletteColor(3))
	},
}

var futureEnhancements = Section{
	Title:       "Future Enhancements",
	Placeholder: "No future enhancements were suggested.",
	Present: func(r *domain.InsightsReport, _ Meta) bool {
		return len(r.FutureEnhancements) > 0
	},
	Render: func(c *Canvas, r *domain.InsightsReport, _ Meta) {
		for i, fe := range r.FutureEnhancements {
			body := domain.StrOr(fe.Description, "No description provided.")
			var details []string
			if v := domain.StrOr(fe.RelatedIdea, ""); v != "" {
				details = append(details, "Builds on: "+v)
			}
			details = append(details,
				"Impact: "+domain.StrOr(fe.Impact, missingImpact),
				"Timeline: "+domain.StrOr(fe.Timeline, missingDuration))
			c.Card(i+1,
				domain.StrOr(fe.Title, fmt.Sprintf("Enhancement %d", i+1)),
				body+"\n"+strings.Join(details, " | "),
				c.st.PaletteColor(i+2))
		}
	},
}

var nextSteps = Section{
	Title:       "Next Steps",
	Placeholder: "No next steps were provided.",
	Present: func(r *domain.InsightsReport, _ Meta) bool {
		return len(domain.NonEmpty(r.NextSteps)) > 0
	},
	Render: func(c *Canvas, r *domain.InsightsReport, _ Meta) {
		c.Bullets(domain.NonEmpty(r.NextSteps), true)
	},
}

// supportingDocuments lists uploaded project files with a short preview.
// Previews are shown verbatim and never interpreted.
var supportingDocuments = Section{
	Title:       "Supporting Documents",
	Placeholder: "No documents are attached to this project.",
	Present: func(_ *domain.InsightsReport, m Meta) bool {
		return len(m.Files) > 0
	},
	Render: func(c *Canvas, _ *domain.InsightsReport, m Meta) {
		for i, f := range m.Files {
			preview := strings.Join(strings.Fields(f.ContentPreview), " ")
			if preview == "" {
				preview = "No preview available."
			}
			if r := []rune(preview); len(r) > previewLimit {
				preview = string(r[:previewLimit]) + "..."
			}
			c.Card(0, f.Name, preview, c.st.PaletteColor(i))
		}
	},
}

const previewLimit = 280

func at(list domain.StringList, i int) string {
	if i < len(list) {
		return list[i]
	}
	return ""
}
