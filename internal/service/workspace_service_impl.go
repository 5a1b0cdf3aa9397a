package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/perf"
	"github.com/alexanderramin/prioritas/internal/repository"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type workspaceService struct {
	store    Pinger
	projects ProjectService
	ideas    repository.IdeaRepo
	auth     *perf.AuthMonitor
}

func NewWorkspaceService(store Pinger, projects ProjectService, ideas repository.IdeaRepo, auth *perf.AuthMonitor) WorkspaceService {
	return &workspaceService{store: store, projects: projects, ideas: ideas, auth: auth}
}

func (s *workspaceService) Open(ctx context.Context, userID, projectRef string) (ws *Workspace, err error) {
	flow := s.auth.StartFlow()
	defer func() { _ = flow.Finish(err) }()

	ws = &Workspace{UserID: strings.TrimSpace(userID)}

	step := s.auth.StartStep(perf.ChannelSessionCheck)
	err = step.Finish(s.checkSession(ctx, ws.UserID))
	if err != nil {
		return nil, err
	}

	step = s.auth.StartStep(perf.ChannelProfileFetch)
	var owned []*domain.Project
	owned, err = s.ownedProjects(ctx, ws.UserID)
	if err = step.Finish(err); err != nil {
		return nil, err
	}
	ws.ProjectCount = len(owned)

	if projectRef == "" {
		return ws, nil
	}

	step = s.auth.StartStep(perf.ChannelProjectLoad)
	err = step.Finish(s.loadProject(ctx, ws, projectRef))
	if err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *workspaceService) checkSession(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("no user configured (set PRIORITAS_USER or pass --user)")
	}
	if err := s.store.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}

// ownedProjects counts projects owned by the user; unowned projects are
// shared with everyone and count too.
func (s *workspaceService) ownedProjects(ctx context.Context, userID string) ([]*domain.Project, error) {
	all, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*domain.Project
	for _, p := range all {
		if p.OwnerID == "" || p.OwnerID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *workspaceService) loadProject(ctx context.Context, ws *Workspace, ref string) error {
	p, err := s.projects.Resolve(ctx, ref)
	if err != nil {
		return err
	}
	ideas, err := s.ideas.ListByProject(ctx, p.ID)
	if err != nil {
		return err
	}
	ws.Project = p
	ws.Ideas = ideas
	return nil
}
