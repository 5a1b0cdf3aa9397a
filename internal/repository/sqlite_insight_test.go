package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightRepo_SaveAssignsIncreasingVersions(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Versions")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteInsightRepo(db)
	first := testutil.NewTestInsight(proj.ID, "v1")
	second := testutil.NewTestInsight(proj.ID, "v2")
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, 2, second.Version)

	latest, err := repo.GetLatest(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, "v2", domain.StrOr(latest.Report.ExecutiveSummary, ""))

	history, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 2, history[0].Version)
}

func TestInsightRepo_VersionsArePerProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	a := testutil.NewTestProject("A")
	b := testutil.NewTestProject("B")
	require.NoError(t, projects.Create(ctx, a))
	require.NoError(t, projects.Create(ctx, b))

	repo := NewSQLiteInsightRepo(db)
	require.NoError(t, repo.Save(ctx, testutil.NewTestInsight(a.ID, "a1")))
	rec := testutil.NewTestInsight(b.ID, "b1")
	require.NoError(t, repo.Save(ctx, rec))
	assert.Equal(t, 1, rec.Version)
}

func TestInsightRepo_RoundTripsBothRiskShapes(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Risks")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteInsightRepo(db)
	rec := testutil.NewTestInsight(proj.ID, "summary")
	rec.Report.RiskAssessment = &domain.RiskAssessment{
		HighRisk:    domain.StringList{"scope creep"},
		Mitigations: domain.StringList{"weekly review"},
	}
	require.NoError(t, repo.Save(ctx, rec))

	fetched, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	risks := fetched.Report.Risks()
	assert.Equal(t, domain.StringList{"scope creep"}, risks.HighRisk)
	assert.Equal(t, domain.StringList{"weekly review"}, risks.Mitigations)
	assert.Equal(t, domain.RiskShapeMixed, risks.Shape())
}

func TestInsightRepo_GetLatestWithoutHistory(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteInsightRepo(db)
	_, err := repo.GetLatest(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
