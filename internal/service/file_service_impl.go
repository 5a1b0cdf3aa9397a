package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/prioritas/internal/domain"
	"github.com/alexanderramin/prioritas/internal/repository"
	"github.com/google/uuid"
)

// MaxFileSize is the largest document that can be attached.
const MaxFileSize = 10 << 20

type fileService struct {
	files    repository.ProjectFileRepo
	projects repository.ProjectRepo
}

func NewFileService(files repository.ProjectFileRepo, projects repository.ProjectRepo) FileService {
	return &fileService{files: files, projects: projects}
}

func (s *fileService) Attach(ctx context.Context, projectID, path, uploadedBy string) (*domain.ProjectFile, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%s is %d bytes, the limit is %d", path, info.Size(), MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	name := filepath.Base(path)
	mimeType := detectMime(name, data)
	preview, err := extractPreview(mimeType, data)
	if err != nil {
		return nil, fmt.Errorf("extracting preview from %s: %w", name, err)
	}

	f := &domain.ProjectFile{
		ID:             uuid.New().String(),
		ProjectID:      projectID,
		Name:           name,
		MimeType:       mimeType,
		SizeBytes:      info.Size(),
		ContentPreview: preview,
		UploadedBy:     uploadedBy,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.files.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *fileService) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectFile, error) {
	return s.files.ListByProject(ctx, projectID)
}

func (s *fileService) Delete(ctx context.Context, id string) error {
	return s.files.Delete(ctx, id)
}
