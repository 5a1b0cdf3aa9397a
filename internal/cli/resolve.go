package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/repository"
)

func resolveProject(ctx context.Context, app *App, ref string) (*domain.Project, error) {
	return app.Projects.Resolve(ctx, ref)
}

// resolveIdea finds an idea of the project by full ID or unique prefix.
func resolveIdea(ctx context.Context, app *App, projectID, ref string) (*domain.Idea, error) {
	ideas, err := app.Ideas.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return matchPrefix(ideas, ref, "idea", func(i *domain.Idea) string { return i.ID })
}

func resolveFile(ctx context.Context, app *App, projectID, ref string) (*domain.ProjectFile, error) {
	files, err := app.Files.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return matchPrefix(files, ref, "file", func(f *domain.ProjectFile) string { return f.ID })
}

// resolveInsight returns the record named by ref, or the project's latest
// when ref is empty.
func resolveInsight(ctx context.Context, app *App, projectID, ref string) (*domain.InsightRecord, error) {
	if ref == "" {
		return app.Insights.Latest(ctx, projectID)
	}
	records, err := app.Insights.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return matchPrefix(records, ref, "insight", func(r *domain.InsightRecord) string { return r.ID })
}

func matchPrefix[T any](items []*T, ref, kind string, id func(*T) string) (*T, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%s ID is required", kind)
	}
	var matches []*T
	for _, it := range items {
		if id(it) == ref {
			return it, nil
		}
		if strings.HasPrefix(id(it), ref) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%s %q: %w", kind, ref, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, ref, len(matches))
	}
}
