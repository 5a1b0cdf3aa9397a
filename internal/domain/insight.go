package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// InsightsReport is an AI-authored analysis of a project's ideas. Every
// field is optional: the generator is untrusted and may omit anything.
// Readers go through StrOr and the list accessors, never through raw
// pointer checks.
type InsightsReport struct {
	ExecutiveSummary        *string                  `json:"executiveSummary,omitempty"`
	KeyInsights             []KeyInsight             `json:"keyInsights,omitempty"`
	PriorityRecommendations *PriorityRecommendations `json:"priorityRecommendations,omitempty"`
	RiskAssessment          *RiskAssessment          `json:"riskAssessment,omitempty"`
	SuggestedRoadmap        []RoadmapPhase           `json:"suggestedRoadmap,omitempty"`
	ResourceAllocation      *ResourceAllocation      `json:"resourceAllocation,omitempty"`
	FutureEnhancements      []FutureEnhancement      `json:"futureEnhancements,omitempty"`
	NextSteps               StringList               `json:"nextSteps,omitempty"`
}

// UnmarshalJSON decodes each section independently. A section whose JSON
// has the wrong type is dropped instead of failing the whole report.
func (r *InsightsReport) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var out InsightsReport
	decodeField(fields, "executiveSummary", &out.ExecutiveSummary)
	decodeField(fields, "keyInsights", &out.KeyInsights)
	decodeField(fields, "priorityRecommendations", &out.PriorityRecommendations)
	decodeField(fields, "riskAssessment", &out.RiskAssessment)
	decodeField(fields, "suggestedRoadmap", &out.SuggestedRoadmap)
	decodeField(fields, "resourceAllocation", &out.ResourceAllocation)
	decodeField(fields, "futureEnhancements", &out.FutureEnhancements)
	decodeField(fields, "nextSteps", &out.NextSteps)
	*r = out
	return nil
}

func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}

type KeyInsight struct {
	Insight *string `json:"insight,omitempty"`
	Impact  *string `json:"impact,omitempty"`
}

// UnmarshalJSON accepts either an object or a bare string (taken as the
// insight text).
func (k *KeyInsight) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		k.Insight = &s
		return nil
	}
	type plain KeyInsight
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	*k = KeyInsight(p)
	return nil
}

type PriorityRecommendations struct {
	Immediate StringList `json:"immediate,omitempty"`
	ShortTerm StringList `json:"shortTerm,omitempty"`
	LongTerm  StringList `json:"longTerm,omitempty"`
}

// RiskShape names which of the two risk-assessment layouts a report used.
type RiskShape string

const (
	RiskShapeNone             RiskShape = "none"
	RiskShapeHighRiskOpps     RiskShape = "high_risk_opportunities"
	RiskShapeRisksMitigations RiskShape = "risks_mitigations"
	RiskShapeMixed            RiskShape = "mixed"
)

// RiskAssessment carries both layouts produced by generators:
// {highRisk, opportunities} and {risks, mitigations}. They are kept as
// separate fields; neither is folded into the other.
type RiskAssessment struct {
	HighRisk      StringList `json:"highRisk,omitempty"`
	Opportunities StringList `json:"opportunities,omitempty"`
	Risks         StringList `json:"risks,omitempty"`
	Mitigations   StringList `json:"mitigations,omitempty"`
}

// Shape reports which layout the assessment was populated with.
func (r *RiskAssessment) Shape() RiskShape {
	if r == nil {
		return RiskShapeNone
	}
	first := len(r.HighRisk) > 0 || len(r.Opportunities) > 0
	second := len(r.Risks) > 0 || len(r.Mitigations) > 0
	switch {
	case first && second:
		return RiskShapeMixed
	case first:
		return RiskShapeHighRiskOpps
	case second:
		return RiskShapeRisksMitigations
	default:
		return RiskShapeNone
	}
}

type RoadmapPhase struct {
	Phase    *string    `json:"phase,omitempty"`
	Duration *string    `json:"duration,omitempty"`
	Focus    *string    `json:"focus,omitempty"`
	Ideas    StringList `json:"ideas,omitempty"`
}

type ResourceAllocation struct {
	QuickWins *string `json:"quickWins,omitempty"`
	Strategic *string `json:"strategic,omitempty"`
}

type FutureEnhancement struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	RelatedIdea *string `json:"relatedIdea,omitempty"`
	Impact      *string `json:"impact,omitempty"`
	Timeline    *string `json:"timeline,omitempty"`
}

// UnmarshalJSON accepts an object or a bare string (taken as the title).
func (f *FutureEnhancement) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Title = &s
		return nil
	}
	type plain FutureEnhancement
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	*f = FutureEnhancement(p)
	return nil
}

// StringList decodes leniently: a JSON array of strings, a single string,
// or an array mixing strings with objects (the first string-valued field of
// each object is used). Anything else decodes to an empty list.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			*l = StringList{single}
		}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = nil
		return nil
	}
	out := make(StringList, 0, len(raw))
	for _, item := range raw {
		if s := looseString(item); s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

var preferredTextKeys = []string{"title", "text", "step", "description", "name", "idea", "content"}

func looseString(item json.RawMessage) string {
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj map[string]any
	if err := json.Unmarshal(item, &obj); err != nil {
		return ""
	}
	for _, k := range preferredTextKeys {
		if v, ok := obj[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// IsEmpty reports whether the report carries no content at all.
func (r *InsightsReport) IsEmpty() bool {
	return r == nil || (StrOr(r.ExecutiveSummary, "") == "" &&
		len(r.KeyInsights) == 0 &&
		r.PriorityRecommendations == nil &&
		r.RiskAssessment == nil &&
		len(r.SuggestedRoadmap) == 0 &&
		r.ResourceAllocation == nil &&
		len(r.FutureEnhancements) == 0 &&
		len(r.NextSteps) == 0)
}

// Recommendations returns the priority recommendations, never nil.
func (r *InsightsReport) Recommendations() PriorityRecommendations {
	if r == nil {
		return PriorityRecommendations{}
	}
	return Or(r.PriorityRecommendations)
}

// Risks returns the risk assessment, never nil.
func (r *InsightsReport) Risks() RiskAssessment {
	if r == nil {
		return RiskAssessment{}
	}
	return Or(r.RiskAssessment)
}

// Resources returns the resource allocation, never nil.
func (r *InsightsReport) Resources() ResourceAllocation {
	if r == nil {
		return ResourceAllocation{}
	}
	return Or(r.ResourceAllocation)
}

// InsightRecord is a persisted generation. Records are immutable; a new
// generation for the same project gets the next version number.
type InsightRecord struct {
	ID        string
	ProjectID string
	Name      string
	Version   int
	IdeaCount int
	OwnerID   string
	Report    InsightsReport
	CreatedAt time.Time
}
