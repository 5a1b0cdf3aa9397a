package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/prioritas/internal/db"
	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/repository"
	"github.com/alexanderramin/prioritas/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db       *sql.DB
	projects repository.ProjectRepo
	ideas    repository.IdeaRepo
	insights repository.InsightRepo
	files    repository.ProjectFileRepo
	uow      db.UnitOfWork
}

func setupRepos(t *testing.T) testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testEnv{
		db:       database,
		projects: repository.NewSQLiteProjectRepo(database),
		ideas:    repository.NewSQLiteIdeaRepo(database),
		insights: repository.NewSQLiteInsightRepo(database),
		files:    repository.NewSQLiteProjectFileRepo(database),
		uow:      testutil.NewTestUoW(database),
	}
}

func (e testEnv) seedProject(t *testing.T, name string, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name, opts...)
	require.NoError(t, e.projects.Create(context.Background(), p))
	return p
}

func (e testEnv) seedIdea(t *testing.T, projectID, content string, opts ...testutil.IdeaOption) *domain.Idea {
	t.Helper()
	i := testutil.NewTestIdea(projectID, content, opts...)
	require.NoError(t, e.ideas.Create(context.Background(), i))
	return i
}
