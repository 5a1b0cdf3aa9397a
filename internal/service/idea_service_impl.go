package service

import (
	"context"
	"time"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/perf"
	"github.com/alexanderramin/prioritas/internal/repository"
	"github.com/google/uuid"
)

type ideaService struct {
	ideas    repository.IdeaRepo
	projects repository.ProjectRepo
	matrix   perf.MatrixMonitor
}

func NewIdeaService(ideas repository.IdeaRepo, projects repository.ProjectRepo, matrix perf.MatrixMonitor) IdeaService {
	return &ideaService{ideas: ideas, projects: projects, matrix: matrix}
}

func (s *ideaService) Create(ctx context.Context, i *domain.Idea) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if _, err := s.projects.GetByID(ctx, i.ProjectID); err != nil {
		return err
	}
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
	return s.ideas.Create(ctx, i)
}

func (s *ideaService) GetByID(ctx context.Context, id string) (*domain.Idea, error) {
	return s.ideas.GetByID(ctx, id)
}

func (s *ideaService) ListByProject(ctx context.Context, projectID string) ([]*domain.Idea, error) {
	return s.ideas.ListByProject(ctx, projectID)
}

func (s *ideaService) Update(ctx context.Context, i *domain.Idea) error {
	if err := i.Validate(); err != nil {
		return err
	}
	i.UpdatedAt = time.Now().UTC()
	return s.ideas.Update(ctx, i)
}

// Move is the command-line counterpart of dragging a card, so it reports
// through the matrix monitor's drag contract.
func (s *ideaService) Move(ctx context.Context, id string, x, y int) (*domain.Idea, error) {
	drag := s.matrix.MonitorDrag("idea:" + id)
	defer drag.Stop()

	idea, err := s.ideas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	idea.MoveTo(x, y, time.Now().UTC())
	drag.Update()
	if err := s.ideas.Update(ctx, idea); err != nil {
		return nil, err
	}
	return idea, nil
}

func (s *ideaService) Delete(ctx context.Context, id string) error {
	return s.ideas.Delete(ctx, id)
}
