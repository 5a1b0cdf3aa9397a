package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/prioritas/internal/db"
	"github.com/alexanderramin/prioritas/internal/domain"
)

type SQLiteProjectFileRepo struct {
	db db.DBTX
}

func NewSQLiteProjectFileRepo(conn db.DBTX) *SQLiteProjectFileRepo {
	return &SQLiteProjectFileRepo{db: conn}
}

const fileColumns = `id, project_id, name, mime_type, size_bytes, content_preview, uploaded_by, created_at`

func (r *SQLiteProjectFileRepo) Create(ctx context.Context, f *domain.ProjectFile) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO project_files (`+fileColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.ProjectID, f.Name, f.MimeType, f.SizeBytes, f.ContentPreview, f.UploadedBy, formatTime(f.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project file: %w", err)
	}
	return nil
}

func (r *SQLiteProjectFileRepo) GetByID(ctx context.Context, id string) (*domain.ProjectFile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+fileColumns+` FROM project_files WHERE id = ?`, id)
	f, err := scanProjectFile(row)
	if err != nil {
		return nil, notFound("project file "+id, err)
	}
	return f, nil
}

func (r *SQLiteProjectFileRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectFile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+fileColumns+` FROM project_files WHERE project_id = ? ORDER BY created_at, name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project files: %w", err)
	}
	defer rows.Close()

	var files []*domain.ProjectFile
	for rows.Next() {
		f, err := scanProjectFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *SQLiteProjectFileRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project_files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project file: %w", err)
	}
	return requireAffected(res, "project file "+id)
}

func scanProjectFile(s rowScanner) (*domain.ProjectFile, error) {
	var f domain.ProjectFile
	var createdAt string
	if err := s.Scan(&f.ID, &f.ProjectID, &f.Name, &f.MimeType, &f.SizeBytes,
		&f.ContentPreview, &f.UploadedBy, &createdAt); err != nil {
		return nil, err
	}
	if err := parseTimestamps(ts("created_at", createdAt, &f.CreatedAt)); err != nil {
		return nil, err
	}
	return &f, nil
}
