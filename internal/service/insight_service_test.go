package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/intelligence"
	"github.com/alexanderramin/prioritas/internal/llm"
	"github.com/alexanderramin/prioritas/internal/perf"
	"github.com/alexanderramin/prioritas/internal/report"
	"github.com/alexanderramin/prioritas/internal/repository"
	"github.com/alexanderramin/prioritas/internal/testutil"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	report *domain.InsightsReport
	err    error
	got    intelligence.GenerateInsightsRequest
}

func (g *stubGenerator) GenerateInsights(_ context.Context, req intelligence.GenerateInsightsRequest) (*domain.InsightsReport, error) {
	g.got = req
	return g.report, g.err
}

// brokenSurface renders normally but reports a write error at the end.
type brokenSurface struct {
	*report.PDFSurface
}

func (brokenSurface) Err() error { return errors.New("surface broke") }

func newInsights(env testEnv, gen intelligence.InsightsGenerator, counters *perf.Counters) *insightService {
	return NewInsightService(env.projects, env.ideas, env.insights, env.files, gen, counters).(*insightService)
}

func seedMatrix(t *testing.T, env testEnv) *domain.Project {
	t.Helper()
	p := env.seedProject(t, "Launchpad", testutil.WithProjectType(domain.ProjectSoftware))
	env.seedIdea(t, p.ID, "Dark mode", testutil.WithPosition(100, 100), testutil.WithPriority(domain.PriorityHigh))
	env.seedIdea(t, p.ID, "Rewrite backend", testutil.WithPosition(500, 100))
	env.seedIdea(t, p.ID, "Blockchain", testutil.WithPosition(600, 600))
	return p
}

func TestInsightService_Generate_SavesVersions(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	p := seedMatrix(t, env)
	summary := "Ship dark mode"
	gen := &stubGenerator{report: &domain.InsightsReport{ExecutiveSummary: &summary}}
	counters := perf.NewCounters(true, perf.DefaultCapacity)
	svc := newInsights(env, gen, counters)

	first, err := svc.Generate(ctx, GenerateRequest{ProjectID: p.ID, OwnerID: "ana", Model: "mistral"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, 3, first.IdeaCount)
	assert.Equal(t, "ana", first.OwnerID)
	assert.Equal(t, "Launchpad Insights", first.Name)

	assert.Len(t, gen.got.Ideas, 3)
	assert.Equal(t, "Launchpad", gen.got.ProjectName)
	assert.Equal(t, domain.ProjectSoftware, gen.got.ProjectType)
	assert.Equal(t, "mistral", gen.got.PreferredModel)
	assert.Equal(t, llm.TaskInsights, gen.got.Task)

	second, err := svc.Generate(ctx, GenerateRequest{ProjectID: p.ID, Roadmap: true})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)
	assert.Equal(t, llm.TaskRoadmap, gen.got.Task)
	assert.Equal(t, "tester", second.OwnerID, "owner falls back to the project owner")

	history, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 2, history[0].Version)

	latest, err := svc.Latest(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	assert.Len(t, counters.Samples(ChannelGenerateInsights), 2)
}

func TestInsightService_Generate_Offline(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	p := seedMatrix(t, env)
	gen := &stubGenerator{err: errors.New("must not be called")}

	rec, err := newInsights(env, gen, nil).Generate(ctx, GenerateRequest{ProjectID: p.ID, Offline: true})
	require.NoError(t, err)
	assert.Equal(t, domain.RiskShapeHighRiskOpps, rec.Report.RiskAssessment.Shape())
	assert.Contains(t, domain.StrOr(rec.Report.ExecutiveSummary, ""), "Launchpad has 3 ideas")

	stored, err := env.insights.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Report.Recommendations().Immediate, stored.Report.Recommendations().Immediate)
}

func TestInsightService_Generate_FailureStoresNothing(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	p := seedMatrix(t, env)
	counters := perf.NewCounters(true, perf.DefaultCapacity)
	svc := newInsights(env, &stubGenerator{err: llm.ErrUnavailable}, counters)

	_, err := svc.Generate(ctx, GenerateRequest{ProjectID: p.ID})
	assert.True(t, errors.Is(err, llm.ErrUnavailable))

	history, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	samples := counters.Samples(ChannelGenerateInsights)
	require.Len(t, samples, 1)
	assert.Equal(t, perf.OutcomeError, samples[0].Outcome)
}

// cancellingGenerator returns a report after the caller's context has been
// cancelled, like a generator that never looks at ctx.
type cancellingGenerator struct {
	cancel context.CancelFunc
}

func (g cancellingGenerator) GenerateInsights(_ context.Context, req intelligence.GenerateInsightsRequest) (*domain.InsightsReport, error) {
	g.cancel()
	return intelligence.DeterministicInsights(req), nil
}

func TestInsightService_Generate_CancelledDuringGenerationSavesNothing(t *testing.T) {
	env := setupRepos(t)
	p := seedMatrix(t, env)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := newInsights(env, cancellingGenerator{cancel: cancel}, nil)

	rec, err := svc.Generate(ctx, GenerateRequest{ProjectID: p.ID})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, rec)

	history, err := svc.List(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestInsightService_Generate_Disabled(t *testing.T) {
	env := setupRepos(t)
	p := seedMatrix(t, env)
	gen := intelligence.NewInsightsGenerator(nil, llm.DefaultConfig())

	_, err := newInsights(env, gen, nil).Generate(context.Background(), GenerateRequest{ProjectID: p.ID})
	assert.ErrorIs(t, err, intelligence.ErrDisabled)
}

func TestInsightService_Save(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	p := env.seedProject(t, "Saved")
	svc := newInsights(env, nil, nil)

	id, err := svc.Save(ctx, p.ID, domain.InsightsReport{NextSteps: domain.StringList{"Go"}}, "ana", 7)
	require.NoError(t, err)

	rec, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Version)
	assert.Equal(t, 7, rec.IdeaCount)
	assert.Equal(t, "ana", rec.OwnerID)
	assert.Equal(t, domain.StringList{"Go"}, rec.Report.NextSteps)

	_, err = svc.Save(ctx, "missing", domain.InsightsReport{}, "ana", 0)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestInsightService_ExportPDF(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	p := seedMatrix(t, env)
	require.NoError(t, env.files.Create(ctx, testutil.NewTestFile(p.ID, "brief.txt")))
	counters := perf.NewCounters(true, perf.DefaultCapacity)
	svc := newInsights(env, nil, counters)

	rec, err := svc.Generate(ctx, GenerateRequest{ProjectID: p.ID, Offline: true})
	require.NoError(t, err)

	res, err := svc.ExportPDF(ctx, PDFRequest{ProjectID: p.ID})
	require.NoError(t, err)
	assert.Regexp(t, `^Launchpad_AI_Insights_Report_\d{4}-\d{2}-\d{2}\.pdf$`, res.Filename)
	assert.True(t, bytes.HasPrefix(res.Data, []byte("%PDF")))

	r, err := pdf.NewReader(bytes.NewReader(res.Data), int64(len(res.Data)))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.NumPage(), 1)

	byID, err := svc.ExportPDF(ctx, PDFRequest{InsightID: rec.ID, Style: report.MustStyle(report.VariantRoadmap)})
	require.NoError(t, err)
	assert.Regexp(t, `_Roadmap_`, byID.Filename)

	samples := counters.Samples(ChannelExportPDF)
	require.Len(t, samples, 2)
	assert.Equal(t, perf.OutcomeSuccess, samples[0].Outcome)
}

func TestInsightService_ExportPDF_FailureReturnsNothing(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	p := seedMatrix(t, env)
	svc := newInsights(env, nil, nil)
	_, err := svc.Generate(ctx, GenerateRequest{ProjectID: p.ID, Offline: true})
	require.NoError(t, err)

	svc.newSurface = func(st report.Style) report.Surface {
		return brokenSurface{report.NewPDFSurface(st)}
	}
	res, err := svc.ExportPDF(ctx, PDFRequest{ProjectID: p.ID})
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, report.ErrExportFailed))
}

func TestInsightService_ExportPDF_NoInsights(t *testing.T) {
	env := setupRepos(t)
	p := env.seedProject(t, "Empty")

	_, err := newInsights(env, nil, nil).ExportPDF(context.Background(), PDFRequest{ProjectID: p.ID})
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
