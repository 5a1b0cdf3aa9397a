package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdeaRepo_CreateNormalizes(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Matrix")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteIdeaRepo(db)
	idea := testutil.NewTestIdea(proj.ID, "  Dark mode  ",
		testutil.WithPriority("urgent"),
		testutil.WithPosition(-400, 9000))
	require.NoError(t, repo.Create(ctx, idea))

	fetched, err := repo.GetByID(ctx, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dark mode", fetched.Content)
	assert.Equal(t, domain.PriorityModerate, fetched.Priority)
	assert.Equal(t, domain.MinPosition, fetched.X)
	assert.Equal(t, domain.MaxPosition, fetched.Y)
}

func TestIdeaRepo_ListAndCountByProject(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	projects := NewSQLiteProjectRepo(db)
	a := testutil.NewTestProject("A")
	b := testutil.NewTestProject("B")
	require.NoError(t, projects.Create(ctx, a))
	require.NoError(t, projects.Create(ctx, b))

	repo := NewSQLiteIdeaRepo(db)
	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestIdea(a.ID, title)))
	}
	require.NoError(t, repo.Create(ctx, testutil.NewTestIdea(b.ID, "other")))

	ideas, err := repo.ListByProject(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	assert.Equal(t, "first", ideas[0].Content)
	assert.Equal(t, "third", ideas[2].Content)

	n, err := repo.CountByProject(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestIdeaRepo_UpdateMovesIdea(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	proj := testutil.NewTestProject("Move")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))

	repo := NewSQLiteIdeaRepo(db)
	idea := testutil.NewTestIdea(proj.ID, "Onboarding")
	require.NoError(t, repo.Create(ctx, idea))

	idea.MoveTo(100, 50, time.Now().UTC())
	require.NoError(t, repo.Update(ctx, idea))

	fetched, err := repo.GetByID(ctx, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, fetched.X)
	assert.Equal(t, 50, fetched.Y)
	assert.Equal(t, domain.QuadrantQuickWins, fetched.Quadrant())
}

func TestIdeaRepo_DeleteMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteIdeaRepo(db)
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNotFound)
}
