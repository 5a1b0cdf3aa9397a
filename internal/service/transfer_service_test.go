package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/ideaio"
	"github.com/alexanderramin/prioritas/internal/perf"
	"github.com/alexanderramin/prioritas/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const importCSV = `ID,Title,Details,Priority,X Position,Y Position,Created By,Created At,Updated At
"1","Dark mode","Users keep asking","high","100","120","ana","",""
"2","Rewrite ""core""","","bogus","10000","-500","","",""
"3","Too short","x"
"4","Ship it","","strategic","300","40"
`

func newTransfer(env testEnv, counters *perf.Counters) TransferService {
	return NewTransferService(env.projects, env.ideas, env.uow, counters)
}

func TestTransferService_ImportCSV(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	p := env.seedProject(t, "Import")
	counters := perf.NewCounters(true, perf.DefaultCapacity)

	res, err := newTransfer(env, counters).ImportCSV(ctx, p.ID, "ideas.CSV", importCSV, "fallback-user")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created, "short row is dropped")

	ideas, err := env.ideas.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, ideas, 3)

	byTitle := map[string]*domain.Idea{}
	for _, i := range ideas {
		assert.NotEmpty(t, i.ID)
		assert.NotEqual(t, "1", i.ID, "ids are assigned on import, never taken from the file")
		byTitle[i.Content] = i
	}

	dark := byTitle["Dark mode"]
	require.NotNil(t, dark)
	assert.Equal(t, domain.PriorityHigh, dark.Priority)
	assert.Equal(t, "Users keep asking", dark.Details)
	assert.Equal(t, "ana", dark.CreatedBy)

	core := byTitle[`Rewrite "core"`]
	require.NotNil(t, core)
	assert.Equal(t, domain.PriorityModerate, core.Priority)
	assert.Equal(t, domain.MaxPosition, core.X)
	assert.Equal(t, domain.MinPosition, core.Y)
	assert.Equal(t, "fallback-user", core.CreatedBy)

	ship := byTitle["Ship it"]
	require.NotNil(t, ship)
	assert.Equal(t, domain.PriorityStrategic, ship.Priority)

	samples := counters.Samples(ChannelImportCSV)
	require.Len(t, samples, 1)
	assert.Equal(t, perf.OutcomeSuccess, samples[0].Outcome)
}

func TestTransferService_ImportCSV_ValidationRejectsBeforeParsing(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	p := env.seedProject(t, "Import")
	counters := perf.NewCounters(true, perf.DefaultCapacity)
	svc := newTransfer(env, counters)

	_, err := svc.ImportCSV(ctx, p.ID, "ideas.txt", importCSV, "u")
	assert.True(t, errors.Is(err, ideaio.ErrNotCSV))

	_, err = svc.ImportCSV(ctx, p.ID, "ideas.csv", "ID,Title\n\n", "u")
	assert.True(t, errors.Is(err, ideaio.ErrNoDataRows))

	n, err := env.ideas.CountByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	samples := counters.Samples(ChannelImportCSV)
	require.Len(t, samples, 2)
	assert.Equal(t, perf.OutcomeError, samples[1].Outcome)
}

func TestTransferService_ImportCSV_BlankTitlesStoredUntitled(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	p := env.seedProject(t, "Import")

	content := "ID,Title,Details,Priority\n\"1\",\"  \",\"d\",\"low\"\n\"2\",\"Real\",\"\",\"low\"\n"
	res, err := newTransfer(env, nil).ImportCSV(ctx, p.ID, "a.csv", content, "u")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Untitled)

	ideas, err := env.ideas.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	titles := []string{ideas[0].Content, ideas[1].Content}
	assert.ElementsMatch(t, []string{domain.UntitledIdea, "Real"}, titles)
}

func TestTransferService_ImportCSV_KeepsTitleWhitespace(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	p := env.seedProject(t, "Import")

	content := "ID,Title,Details,Priority\n\"1\",\"  padded \",\"\",\"low\"\n"
	_, err := newTransfer(env, nil).ImportCSV(ctx, p.ID, "a.csv", content, "u")
	require.NoError(t, err)

	ideas, err := env.ideas.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, "  padded ", ideas[0].Content)
}

func TestTransferService_ImportCSV_FallbackUserPerCall(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	p := env.seedProject(t, "Import")
	svc := newTransfer(env, nil)

	content := "ID,Title,Details,Priority\n\"1\",\"First\",\"\",\"low\"\n"
	_, err := svc.ImportCSV(ctx, p.ID, "a.csv", content, "alice")
	require.NoError(t, err)
	_, err = svc.ImportCSV(ctx, p.ID, "b.csv", strings.Replace(content, "First", "Second", 1), "bob")
	require.NoError(t, err)

	ideas, err := env.ideas.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	authors := map[string]string{}
	for _, i := range ideas {
		authors[i.Content] = i.CreatedBy
	}
	assert.Equal(t, map[string]string{"First": "alice", "Second": "bob"}, authors)
}

func TestTransferService_ImportCSV_RollbackOnCreateFailure(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	p := env.seedProject(t, "Rollback")

	// Writes inside the import transaction are the idea inserts only:
	// #1 Dark mode, #2 Rewrite "core", #3 Ship it. Fail the second.
	failUoW := &testutil.FailOnNthWriteUoW{
		DB:     env.db,
		FailOn: 2,
		Err:    fmt.Errorf("injected idea create failure"),
	}
	svc := NewTransferService(env.projects, env.ideas, failUoW, nil)

	_, err := svc.ImportCSV(ctx, p.ID, "ideas.csv", importCSV, "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected idea create failure")

	n, err := env.ideas.CountByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, n, "no idea may survive a failed import")
}

func TestTransferService_ImportCSV_UnknownProject(t *testing.T) {
	env := setupRepos(t)

	_, err := newTransfer(env, nil).ImportCSV(context.Background(), "missing", "ideas.csv", importCSV, "u")
	require.Error(t, err)
}

func TestTransferService_ExportCSV_RoundTrip(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	p := env.seedProject(t, "Export")
	env.seedIdea(t, p.ID, `Say "hi", loudly`, testutil.WithPriority(domain.PriorityInnovation), testutil.WithPosition(10, 700))
	env.seedIdea(t, p.ID, "Plain")

	res, err := newTransfer(env, nil).ExportCSV(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Filename, "prioritas-ideas-"))
	assert.True(t, strings.HasSuffix(res.Filename, ".csv"))

	text := string(res.Data)
	assert.True(t, strings.HasPrefix(text, "ID,Title,Details,Priority,X Position,Y Position,Created By,Created At,Updated At"))
	assert.Contains(t, text, `"Say ""hi"", loudly"`)

	parsed := ideaio.ParseCSV(text, "nobody")
	require.Len(t, parsed, 2)
	assert.Equal(t, `Say "hi", loudly`, parsed[0].Content)
	assert.Equal(t, domain.PriorityInnovation, parsed[0].Priority)
	assert.Equal(t, 10, parsed[0].X)
	assert.Equal(t, 700, parsed[0].Y)
}

func TestTransferService_ExportXLSX(t *testing.T) {
	env := setupRepos(t)
	ctx := context.Background()
	p := env.seedProject(t, "Sheet")
	env.seedIdea(t, p.ID, "Row one")

	counters := perf.NewCounters(true, perf.DefaultCapacity)
	res, err := newTransfer(env, counters).ExportXLSX(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Filename, ".xlsx"))

	f, err := excelize.OpenReader(bytes.NewReader(res.Data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Ideas")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Row one", rows[1][1])

	assert.Len(t, counters.Samples(ChannelExportXLSX), 1)
}

func TestTransferService_Export_UnknownProject(t *testing.T) {
	env := setupRepos(t)
	svc := newTransfer(env, nil)

	_, err := svc.ExportCSV(context.Background(), "missing")
	assert.Error(t, err)
	_, err = svc.ExportXLSX(context.Background(), "missing")
	assert.Error(t, err)
}
