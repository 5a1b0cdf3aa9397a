package perf

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Channels of the sign-in flow: resolving the session, loading the user's
// profile, and loading their projects.
const (
	ChannelAuthTotal    = "auth.total"
	ChannelSessionCheck = "auth.session_check"
	ChannelProfileFetch = "auth.profile_fetch"
	ChannelProjectLoad  = "auth.project_load"
)

// Targets the sign-in flow is validated against.
const (
	TargetTotal        = 800 * time.Millisecond
	TargetSessionCheck = 200 * time.Millisecond
	TargetProfileFetch = 300 * time.Millisecond
	TargetProjectLoad  = 300 * time.Millisecond
	TargetSuccessRate  = 0.95

	// maxPenalty caps what a single metric can cost the score.
	maxPenalty = 25.0
)

type timingTarget struct {
	channel        string
	label          string
	target         time.Duration
	recommendation string
}

var authTargets = []timingTarget{
	{ChannelAuthTotal, "sign-in flow", TargetTotal,
		"Load the profile and projects concurrently instead of one after the other."},
	{ChannelSessionCheck, "session check", TargetSessionCheck,
		"Cache the resolved session instead of re-validating it on every command."},
	{ChannelProfileFetch, "profile fetch", TargetProfileFetch,
		"Fetch only the profile columns the workspace needs."},
	{ChannelProjectLoad, "project load", TargetProjectLoad,
		"Add an index on the projects owner column or page the project list."},
}

// Validation is the outcome of comparing averages against targets.
type Validation struct {
	Passed          bool
	Score           int
	Issues          []string
	Recommendations []string
}

// AuthMonitor times the sign-in flow on a shared Counters.
type AuthMonitor struct {
	c *Counters
}

func NewAuthMonitor(c *Counters) *AuthMonitor {
	return &AuthMonitor{c: c}
}

// StartFlow times the whole flow on ChannelAuthTotal.
func (m *AuthMonitor) StartFlow() *Timer { return m.c.Start(ChannelAuthTotal) }

// StartStep times one step of the flow.
func (m *AuthMonitor) StartStep(channel string) *Timer { return m.c.Start(channel) }

// Validate scores the retained samples. Each metric over its target costs
// points in proportion to the overshoot, at most maxPenalty; channels
// without data are not judged. The score is always within [0, 100].
func (m *AuthMonitor) Validate() Validation {
	score := 100.0
	var v Validation

	for _, t := range authTargets {
		avg, ok := m.c.Average(t.channel)
		if !ok || avg <= t.target {
			continue
		}
		overshoot := float64(avg-t.target) / float64(t.target)
		score -= math.Min(maxPenalty, overshoot*maxPenalty)
		v.Issues = append(v.Issues, fmt.Sprintf("Average %s time %s exceeds the %s target",
			t.label, avg.Round(time.Millisecond), t.target))
		v.Recommendations = append(v.Recommendations, t.recommendation)
	}

	if rate, ok := m.c.SuccessRate(ChannelAuthTotal); ok && rate < TargetSuccessRate {
		shortfall := (TargetSuccessRate - rate) / TargetSuccessRate
		score -= math.Min(maxPenalty, shortfall*100)
		v.Issues = append(v.Issues, fmt.Sprintf("Sign-in success rate %.0f%% is below the %.0f%% target",
			rate*100, TargetSuccessRate*100))
		v.Recommendations = append(v.Recommendations,
			"Check the database path and permissions; failed sign-ins usually mean the store is unreachable.")
	}

	v.Score = int(math.Round(math.Max(0, math.Min(100, score))))
	v.Passed = len(v.Issues) == 0
	return v
}

// Report renders the averages and the validation result as text.
func (m *AuthMonitor) Report() string {
	var b strings.Builder
	b.WriteString("Sign-in performance\n")
	for _, t := range authTargets {
		avg, ok := m.c.Average(t.channel)
		if !ok {
			fmt.Fprintf(&b, "  %-14s no data (target %s)\n", t.label, t.target)
			continue
		}
		fmt.Fprintf(&b, "  %-14s %s (target %s)\n", t.label, avg.Round(time.Millisecond), t.target)
	}
	if rate, ok := m.c.SuccessRate(ChannelAuthTotal); ok {
		fmt.Fprintf(&b, "  %-14s %.0f%% (target %.0f%%)\n", "success rate", rate*100, TargetSuccessRate*100)
	}
	v := m.Validate()
	fmt.Fprintf(&b, "Score: %d/100", v.Score)
	if v.Passed {
		b.WriteString(" (passed)\n")
		return b.String()
	}
	b.WriteString(" (needs attention)\n")
	for _, issue := range v.Issues {
		fmt.Fprintf(&b, "  - %s\n", issue)
	}
	return b.String()
}
