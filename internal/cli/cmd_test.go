package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/perf"
	"github.com/alexanderramin/prioritas/internal/repository"
	"github.com/alexanderramin/prioritas/internal/service"
	"github.com/alexanderramin/prioritas/internal/testutil"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// testApp wires a full App on an in-memory DB. The insights generator is
// nil, so generation runs offline.
func testApp(t *testing.T) *App {
	t.Helper()
	db := testutil.NewTestDB(t)

	projRepo := repository.NewSQLiteProjectRepo(db)
	ideaRepo := repository.NewSQLiteIdeaRepo(db)
	insightRepo := repository.NewSQLiteInsightRepo(db)
	fileRepo := repository.NewSQLiteProjectFileRepo(db)
	counters := perf.NewCounters(false, perf.DefaultCapacity)
	auth := perf.NewAuthMonitor(counters)
	projects := service.NewProjectService(projRepo)

	return &App{
		Projects:      projects,
		Ideas:         service.NewIdeaService(ideaRepo, projRepo, perf.NewMatrixMonitor()),
		Transfer:      service.NewTransferService(projRepo, ideaRepo, testutil.NewTestUoW(db), counters),
		Insights:      service.NewInsightService(projRepo, ideaRepo, insightRepo, fileRepo, nil, counters),
		Files:         service.NewFileService(fileRepo, projRepo),
		Workspace:     service.NewWorkspaceService(db, projects, ideaRepo, auth),
		Counters:      counters,
		Auth:          auth,
		UserID:        "tester",
		IsInteractive: func() bool { return false },
	}
}

// executeCmd runs the command tree and captures stdout and stderr together.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// seedProject creates project APP01 with one idea per quadrant.
func seedProject(t *testing.T, app *App) *domain.Project {
	t.Helper()
	ctx := context.Background()
	p := testutil.NewTestProject("Launchpad", testutil.WithShortID("APP01"), testutil.WithProjectType(domain.ProjectSoftware))
	require.NoError(t, app.Projects.Create(ctx, p))
	for _, i := range []*domain.Idea{
		testutil.NewTestIdea(p.ID, "Dark mode", testutil.WithPriority(domain.PriorityHigh), testutil.WithPosition(100, 100)),
		testutil.NewTestIdea(p.ID, "Rewrite backend", testutil.WithPriority(domain.PriorityStrategic), testutil.WithPosition(500, 100)),
		testutil.NewTestIdea(p.ID, "Confetti", testutil.WithPriority(domain.PriorityLow), testutil.WithPosition(100, 500)),
		testutil.NewTestIdea(p.ID, "Blockchain", testutil.WithPriority(domain.PriorityInnovation), testutil.WithPosition(600, 600)),
	} {
		require.NoError(t, app.Ideas.Create(ctx, i))
	}
	return p
}

// --- project ---

func TestProjectCmd_AddListShow(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "add", "Launchpad", "--id", "app01", "--type", "software", "--description", "Q3 bets")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Launchpad [APP01]")

	out, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "APP01")
	assert.Contains(t, out, "software")
	assert.Contains(t, out, "tester")

	out, err = executeCmd(t, app, "project", "show", "APP01")
	require.NoError(t, err)
	assert.Contains(t, out, "Q3 bets")
	assert.Contains(t, out, "0 ideas")
}

func TestProjectCmd_AddRequiresShortID(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "add", "Launchpad")
	require.Error(t, err)

	_, err = executeCmd(t, app, "project", "add", "Launchpad", "--id", "A1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uppercase letters")
}

func TestProjectCmd_Update(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	out, err := executeCmd(t, app, "project", "update", "APP01", "--name", "Liftoff", "--type", "marketing")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated project Liftoff")

	p, err := app.Projects.Resolve(context.Background(), "APP01")
	require.NoError(t, err)
	assert.Equal(t, "Liftoff", p.Name)
	assert.Equal(t, domain.ProjectMarketing, p.ProjectType)

	_, err = executeCmd(t, app, "project", "update", "APP01", "--type", "space")
	assert.Error(t, err)
}

func TestProjectCmd_RemoveNeedsConfirmationWithoutTerminal(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	_, err := executeCmd(t, app, "project", "remove", "APP01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out, err := executeCmd(t, app, "project", "remove", "APP01", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted project Launchpad")

	_, err = app.Projects.Resolve(context.Background(), "APP01")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectCmd_UnknownProject(t *testing.T) {
	app := testApp(t)
	_, err := executeCmd(t, app, "project", "show", "NOPE01")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// --- idea ---

func TestIdeaCmd_AddDefaultsAndList(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	out, err := executeCmd(t, app, "idea", "add", "APP01", "Onboarding tour", "--x", "50", "--y", "900")
	require.NoError(t, err)
	assert.Contains(t, out, "Onboarding tour")
	assert.Contains(t, out, "moderate")
	assert.Contains(t, out, "(50,800)", "y is clamped")

	out, err = executeCmd(t, app, "idea", "list", "APP01")
	require.NoError(t, err)
	assert.Contains(t, out, "Onboarding tour")
	assert.Contains(t, out, "5 ideas")
	assert.Less(t, strings.Index(out, "Dark mode"), strings.Index(out, "Blockchain"))
}

func TestIdeaCmd_AddValidation(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	_, err := executeCmd(t, app, "idea", "add", "APP01")
	require.Error(t, err, "no title and no terminal")
	assert.Contains(t, err.Error(), "title is required")

	_, err = executeCmd(t, app, "idea", "add", "APP01", "Thing", "--priority", "urgent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown priority")
}

func TestIdeaCmd_MoveByPrefix(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	ideas, err := app.Ideas.ListByProject(context.Background(), p.ID)
	require.NoError(t, err)
	target := ideas[0]

	out, err := executeCmd(t, app, "idea", "move", "APP01", target.ID[:8], "--", "700", "-100")
	require.NoError(t, err)
	assert.Contains(t, out, "(700,-50)")

	moved, err := app.Ideas.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.Equal(t, 700, moved.X)
	assert.Equal(t, domain.MinPosition, moved.Y)

	_, err = executeCmd(t, app, "idea", "move", "APP01", target.ID, "left", "0")
	assert.Error(t, err)
}

func TestIdeaCmd_Remove(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	ideas, err := app.Ideas.ListByProject(context.Background(), p.ID)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "idea", "rm", "APP01", ideas[0].ID, "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted idea")

	left, err := app.Ideas.ListByProject(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, left, 3)
}

// --- csv ---

func TestCSVCmd_ImportThenExport(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	dir := t.TempDir()

	src := filepath.Join(dir, "ideas.csv")
	require.NoError(t, os.WriteFile(src, []byte("ID,Title,Details,Priority,X Position,Y Position\n"+
		`"1","Newsletter","","high","90","90"`+"\n"+
		`"2","","","low","10","10"`+"\n"), 0o644))

	out, err := executeCmd(t, app, "csv", "import", "APP01", src)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 ideas into Launchpad")
	assert.Contains(t, out, `1 without a title saved as "Untitled idea"`)

	dest := filepath.Join(dir, "out.csv")
	out, err = executeCmd(t, app, "csv", "export", "APP01", "--out", dest)
	require.NoError(t, err)
	assert.Contains(t, out, dest)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Newsletter"`)
	assert.Contains(t, string(data), `"Dark mode"`)
}

func TestCSVCmd_ImportUsesUserFlag(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)

	src := filepath.Join(t.TempDir(), "ideas.csv")
	require.NoError(t, os.WriteFile(src, []byte("ID,Title,Details,Priority\n"+
		`"1","Referral program","","high"`+"\n"+
		`"2","Pricing page","","low","10","10","dana"`+"\n"), 0o644))

	_, err := executeCmd(t, app, "--user", "alice", "csv", "import", "APP01", src)
	require.NoError(t, err)

	ideas, err := app.Ideas.ListByProject(context.Background(), p.ID)
	require.NoError(t, err)
	authors := map[string]string{}
	for _, i := range ideas {
		authors[i.Content] = i.CreatedBy
	}
	assert.Equal(t, "alice", authors["Referral program"])
	assert.Equal(t, "dana", authors["Pricing page"])
}

func TestCSVCmd_ImportRejectsNonCSV(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	src := filepath.Join(t.TempDir(), "ideas.txt")
	require.NoError(t, os.WriteFile(src, []byte("a,b\n1,2\n"), 0o644))

	_, err := executeCmd(t, app, "csv", "import", "APP01", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only CSV files")
}

func TestCSVCmd_ExportXLSXIntoDirectory(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	dir := t.TempDir()

	_, err := executeCmd(t, app, "csv", "export", "APP01", "--format", "xlsx", "--out", dir)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "prioritas-ideas-*.xlsx"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	f, err := excelize.OpenFile(matches[0])
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestCSVCmd_UnknownFormatWritesNothing(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	dir := t.TempDir()

	_, err := executeCmd(t, app, "csv", "export", "APP01", "--format", "json", "--out", dir)
	require.Error(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// --- insights ---

func TestInsightsCmd_GenerateOfflineShowAndList(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	out, err := executeCmd(t, app, "insights", "generate", "APP01", "--offline")
	require.NoError(t, err)
	assert.Contains(t, out, "Launchpad Insights")
	assert.Contains(t, out, "EXECUTIVE SUMMARY")
	assert.Contains(t, out, "Saved as version 1")

	_, err = executeCmd(t, app, "insights", "generate", "APP01", "--offline", "--roadmap")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "insights", "list", "APP01")
	require.NoError(t, err)
	assert.Contains(t, out, "v1")
	assert.Contains(t, out, "v2")
	assert.Contains(t, out, "Launchpad Roadmap")

	out, err = executeCmd(t, app, "insights", "show", "APP01")
	require.NoError(t, err)
	assert.Contains(t, out, "Launchpad Roadmap")
	assert.Contains(t, out, "Phase 3: Backlog review")
}

func TestInsightsCmd_GenerateWithoutGeneratorFallsBackOffline(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	out, err := executeCmd(t, app, "insights", "generate", "APP01")
	require.NoError(t, err)
	assert.Contains(t, out, "Quick wins")
}

func TestInsightsCmd_ExportPDF(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	dir := t.TempDir()

	_, err := executeCmd(t, app, "insights", "export", "APP01", "--out", dir)
	require.Error(t, err, "nothing generated yet")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = executeCmd(t, app, "insights", "generate", "APP01", "--offline")
	require.NoError(t, err)

	dest := filepath.Join(dir, "report.pdf")
	out, err := executeCmd(t, app, "insights", "export", "APP01", "--out", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported version 1")

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)
	r, err := pdf.NewReader(f, info.Size())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.NumPage(), 1)
}

func TestInsightsCmd_ExportUnknownVariant(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)
	_, err := executeCmd(t, app, "insights", "generate", "APP01", "--offline")
	require.NoError(t, err)
	dir := t.TempDir()

	_, err = executeCmd(t, app, "insights", "export", "APP01", "--variant", "poster", "--out", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report style")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInsightsCmd_Remove(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	_, err := executeCmd(t, app, "insights", "generate", "APP01", "--offline")
	require.NoError(t, err)
	rec, err := app.Insights.Latest(context.Background(), p.ID)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "insights", "remove", "APP01", rec.ID[:6], "--yes")
	require.NoError(t, err)

	records, err := app.Insights.List(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

// --- file ---

func TestFileCmd_AttachListRemove(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	path := filepath.Join(t.TempDir(), "brief.txt")
	require.NoError(t, os.WriteFile(path, []byte("Market research summary\nfor Q3."), 0o644))

	out, err := executeCmd(t, app, "file", "attach", "APP01", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Attached brief.txt")

	out, err = executeCmd(t, app, "file", "list", "APP01")
	require.NoError(t, err)
	assert.Contains(t, out, "brief.txt")
	assert.Contains(t, out, "Market research summary")

	files, err := app.Files.ListByProject(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, files, 1)

	_, err = executeCmd(t, app, "file", "remove", "APP01", files[0].ID, "--yes")
	require.NoError(t, err)
	files, err = app.Files.ListByProject(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
}

// --- status and perf ---

func TestStatusCmd(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	out, err := executeCmd(t, app, "status", "APP01")
	require.NoError(t, err)
	assert.Contains(t, out, "tester")
	assert.Contains(t, out, "Launchpad [APP01]")
	assert.Contains(t, out, "4 ideas")

	_, err = executeCmd(t, app, "status", "--user", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no user configured")
}

func TestPerfAuthCmd_ScoresRuns(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	out, err := executeCmd(t, app, "perf", "auth", "APP01", "--runs", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Ran the sign-in flow 3 times (0 failed)")
	assert.Contains(t, out, perf.ChannelAuthTotal)
	assert.Contains(t, out, "/100")
	assert.Len(t, app.Counters.Samples(perf.ChannelAuthTotal), 3)
}

func TestPerfFlag_PrintsTimingsAfterCommand(t *testing.T) {
	app := testApp(t)
	seedProject(t, app)

	out, err := executeCmd(t, app, "--perf", "insights", "generate", "APP01", "--offline")
	require.NoError(t, err)
	assert.Contains(t, out, "PERFORMANCE")
	assert.Contains(t, out, service.ChannelGenerateInsights)

	app2 := testApp(t)
	out, err = executeCmd(t, app2, "project", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "PERFORMANCE")
}

// --- helpers ---

func TestMatchPrefix(t *testing.T) {
	ideas := []*domain.Idea{{ID: "abc-1"}, {ID: "abc-2"}, {ID: "def-1"}}
	id := func(i *domain.Idea) string { return i.ID }

	got, err := matchPrefix(ideas, "def", "idea", id)
	require.NoError(t, err)
	assert.Equal(t, "def-1", got.ID)

	got, err = matchPrefix(ideas, "abc-1", "idea", id)
	require.NoError(t, err)
	assert.Equal(t, "abc-1", got.ID)

	_, err = matchPrefix(ideas, "abc", "idea", id)
	assert.ErrorContains(t, err, "ambiguous")

	_, err = matchPrefix(ideas, "zzz", "idea", id)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = matchPrefix(ideas, " ", "idea", id)
	assert.Error(t, err)
}

func TestWriteExport_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing", "report.pdf")

	_, err := writeExport(&service.ExportResult{Filename: "x.pdf", Data: []byte("%PDF")}, missing)
	require.Error(t, err)
	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr))

	path, err := writeExport(&service.ExportResult{Filename: "x.pdf", Data: []byte("%PDF")}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "x.pdf"), path)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is renamed, not left behind")
}
