package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/intelligence"
	"github.com/alexanderramin/prioritas/internal/llm"
	"github.com/alexanderramin/prioritas/internal/perf"
	"github.com/alexanderramin/prioritas/internal/report"
	"github.com/alexanderramin/prioritas/internal/repository"
	"github.com/google/uuid"
)

// Counter channels written by the insight service.
const (
	ChannelGenerateInsights = "insights.generate"
	ChannelExportPDF        = "export.pdf"
)

type insightService struct {
	projects  repository.ProjectRepo
	ideas     repository.IdeaRepo
	insights  repository.InsightRepo
	files     repository.ProjectFileRepo
	generator intelligence.InsightsGenerator
	counters  *perf.Counters
	observer  UseCaseObserver

	// newSurface is swapped in tests to inject rendering failures.
	newSurface report.SurfaceFactory
	now        func() time.Time
}

func NewInsightService(
	projects repository.ProjectRepo,
	ideas repository.IdeaRepo,
	insights repository.InsightRepo,
	files repository.ProjectFileRepo,
	generator intelligence.InsightsGenerator,
	counters *perf.Counters,
	observers ...UseCaseObserver,
) InsightService {
	return &insightService{
		projects:   projects,
		ideas:      ideas,
		insights:   insights,
		files:      files,
		generator:  generator,
		counters:   counters,
		observer:   useCaseObserverOrNoop(observers),
		newSurface: report.PDF,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *insightService) Generate(ctx context.Context, req GenerateRequest) (rec *domain.InsightRecord, err error) {
	startedAt := time.Now()
	fields := map[string]any{"project_id": req.ProjectID, "offline": req.Offline, "roadmap": req.Roadmap}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name: "generate-insights", StartedAt: startedAt, Duration: time.Since(startedAt),
			Success: err == nil, Err: err, Fields: fields,
		})
	}()

	project, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	ideas, err := s.ideas.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	fields["ideas"] = len(ideas)

	genReq := intelligence.GenerateInsightsRequest{
		Ideas:          derefIdeas(ideas),
		ProjectName:    project.Name,
		ProjectType:    project.ProjectType,
		ProjectID:      project.ID,
		Project:        project,
		PreferredModel: req.Model,
		Task:           llm.TaskInsights,
	}
	if req.Roadmap {
		genReq.Task = llm.TaskRoadmap
	}

	generator := s.generator
	if req.Offline || generator == nil {
		generator = intelligence.NewMatrixInsightsGenerator()
	}

	timer := s.counters.Start(ChannelGenerateInsights)
	rep, err := generator.GenerateInsights(ctx, genReq)
	if err = timer.Finish(err); err != nil {
		return nil, err
	}

	// A caller that gave up while the report was being built gets nothing saved.
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	rec = &domain.InsightRecord{
		ID:        uuid.New().String(),
		ProjectID: project.ID,
		Name:      insightName(project.Name, req.Roadmap),
		IdeaCount: len(ideas),
		OwnerID:   domain.CoalesceStr(req.OwnerID, project.OwnerID),
		Report:    domain.Or(rep),
		CreatedAt: s.now(),
	}
	if err = s.insights.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving insights: %w", err)
	}
	fields["version"] = rec.Version
	return rec, nil
}

func (s *insightService) Save(ctx context.Context, projectID string, rep domain.InsightsReport, ownerID string, ideaCount int) (string, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return "", err
	}
	rec := &domain.InsightRecord{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      insightName(project.Name, false),
		IdeaCount: ideaCount,
		OwnerID:   ownerID,
		Report:    rep,
		CreatedAt: s.now(),
	}
	if err := s.insights.Save(ctx, rec); err != nil {
		return "", fmt.Errorf("saving insights: %w", err)
	}
	return rec.ID, nil
}

func (s *insightService) Get(ctx context.Context, id string) (*domain.InsightRecord, error) {
	return s.insights.GetByID(ctx, id)
}

func (s *insightService) Latest(ctx context.Context, projectID string) (*domain.InsightRecord, error) {
	return s.insights.GetLatest(ctx, projectID)
}

func (s *insightService) List(ctx context.Context, projectID string) ([]*domain.InsightRecord, error) {
	return s.insights.ListByProject(ctx, projectID)
}

func (s *insightService) Delete(ctx context.Context, id string) error {
	return s.insights.Delete(ctx, id)
}

// ExportPDF renders a stored report into memory. The result is only
// returned when rendering completed; on failure the error wraps
// report.ErrExportFailed and there is nothing to write.
func (s *insightService) ExportPDF(ctx context.Context, req PDFRequest) (result *ExportResult, err error) {
	timer := s.counters.Start(ChannelExportPDF)
	defer func() { _ = timer.Finish(err) }()

	var rec *domain.InsightRecord
	if req.InsightID != "" {
		rec, err = s.insights.GetByID(ctx, req.InsightID)
	} else {
		rec, err = s.insights.GetLatest(ctx, req.ProjectID)
	}
	if err != nil {
		return nil, err
	}

	project, err := s.projects.GetByID(ctx, rec.ProjectID)
	if err != nil {
		return nil, err
	}
	files, err := s.files.ListByProject(ctx, rec.ProjectID)
	if err != nil {
		return nil, err
	}

	style := req.Style
	if style.Variant == "" {
		style = report.MustStyle(report.VariantInsights)
	}
	now := s.now()
	meta := report.Meta{
		ProjectName: project.Name,
		ProjectType: string(project.TypeOrDefault()),
		IdeaCount:   rec.IdeaCount,
		Version:     rec.Version,
		GeneratedAt: now,
		Files:       derefFiles(files),
	}

	var buf bytes.Buffer
	if err = report.Export(&buf, s.newSurface, style, &rec.Report, meta); err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename: report.Filename(project.Name, style.FilenameSuffix, now),
		Data:     buf.Bytes(),
	}, nil
}

func insightName(projectName string, roadmap bool) string {
	kind := "Insights"
	if roadmap {
		kind = "Roadmap"
	}
	return domain.CoalesceStr(projectName, "Untitled project") + " " + kind
}
