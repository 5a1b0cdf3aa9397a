package repository

import (
	"context"

	"github.com/alexanderramin/prioritas/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type IdeaRepo interface {
	Create(ctx context.Context, i *domain.Idea) error
	GetByID(ctx context.Context, id string) (*domain.Idea, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Idea, error)
	CountByProject(ctx context.Context, projectID string) (int, error)
	Update(ctx context.Context, i *domain.Idea) error
	Delete(ctx context.Context, id string) error
}

// InsightRepo stores immutable, versioned insight generations.
type InsightRepo interface {
	// Save assigns rec.Version as one past the project's current maximum
	// and inserts the record.
	Save(ctx context.Context, rec *domain.InsightRecord) error
	GetByID(ctx context.Context, id string) (*domain.InsightRecord, error)
	GetLatest(ctx context.Context, projectID string) (*domain.InsightRecord, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.InsightRecord, error)
	Delete(ctx context.Context, id string) error
}

type ProjectFileRepo interface {
	Create(ctx context.Context, f *domain.ProjectFile) error
	GetByID(ctx context.Context, id string) (*domain.ProjectFile, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectFile, error)
	Delete(ctx context.Context, id string) error
}
