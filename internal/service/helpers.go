package service

import "github.com/alexanderramin/prioritas/internal/domain"

func derefIdeas(ideas []*domain.Idea) []domain.Idea {
	out := make([]domain.Idea, 0, len(ideas))
	for _, i := range ideas {
		out = append(out, *i)
	}
	return out
}

func derefFiles(files []*domain.ProjectFile) []domain.ProjectFile {
	out := make([]domain.ProjectFile, 0, len(files))
	for _, f := range files {
		out = append(out, *f)
	}
	return out
}
