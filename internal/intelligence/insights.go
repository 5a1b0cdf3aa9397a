package intelligence

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/llm"
)

// ErrDisabled is returned when AI generation is switched off in config.
var ErrDisabled = errors.New("ai insights are disabled (set PRIORITAS_LLM_ENABLED=true or use --offline)")

// GenerateInsightsRequest carries everything the generator needs about a
// project. Project may be nil; ProjectName and ProjectType are used then.
type GenerateInsightsRequest struct {
	Ideas          []domain.Idea
	ProjectName    string
	ProjectType    domain.ProjectType
	ProjectID      string
	Project        *domain.Project
	PreferredModel string
	// Task selects the prompt. Empty means llm.TaskInsights.
	Task llm.TaskType
}

func (r GenerateInsightsRequest) name() string {
	if r.Project != nil {
		return domain.CoalesceStr(r.Project.Name, r.ProjectName)
	}
	return r.ProjectName
}

func (r GenerateInsightsRequest) projectType() domain.ProjectType {
	if r.Project != nil && r.Project.ProjectType != "" {
		return r.Project.ProjectType
	}
	if r.ProjectType != "" {
		return r.ProjectType
	}
	return domain.ProjectGeneral
}

func (r GenerateInsightsRequest) task() llm.TaskType {
	if r.Task == "" {
		return llm.TaskInsights
	}
	return r.Task
}

// InsightsGenerator produces an insights report over a project's ideas.
type InsightsGenerator interface {
	GenerateInsights(ctx context.Context, req GenerateInsightsRequest) (*domain.InsightsReport, error)
}

type insightsGenerator struct {
	client llm.LLMClient
}

// NewInsightsGenerator returns a generator backed by client. A disabled
// config yields a generator that always fails with ErrDisabled.
func NewInsightsGenerator(client llm.LLMClient, cfg llm.LLMConfig) InsightsGenerator {
	if !cfg.Enabled || client == nil {
		return disabledGenerator{}
	}
	return &insightsGenerator{client: client}
}

func (g *insightsGenerator) GenerateInsights(ctx context.Context, req GenerateInsightsRequest) (*domain.InsightsReport, error) {
	if len(req.Ideas) == 0 {
		return nil, fmt.Errorf("project has no ideas to analyze")
	}

	task := req.task()
	resp, err := g.client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: systemPromptFor(task),
		UserPrompt:   buildInsightsPrompt(req),
		Model:        req.PreferredModel,
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("generating insights: %w", err)
	}

	report, err := llm.ExtractJSON[domain.InsightsReport](resp.Text, func(r domain.InsightsReport) error {
		if r.IsEmpty() {
			return errors.New("report has no recognised sections")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing insights: %w", err)
	}
	return &report, nil
}

type disabledGenerator struct{}

func (disabledGenerator) GenerateInsights(context.Context, GenerateInsightsRequest) (*domain.InsightsReport, error) {
	return nil, ErrDisabled
}
