package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/prioritas/internal/db"
	"github.com/alexanderramin/prioritas/internal/domain"
)

type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, short_id, name, description, project_type, owner_id, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ShortID, p.Name, p.Description, string(p.TypeOrDefault()), p.OwnerID,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return nil, notFound("project "+id, err)
	}
	return p, nil
}

// GetByShortID matches case-insensitively so users can type "app01".
func (r *SQLiteProjectRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE short_id != '' AND UPPER(short_id) = UPPER(?)`, shortID)
	p, err := scanProject(row)
	if err != nil {
		return nil, notFound("project "+shortID, err)
	}
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET short_id = ?, name = ?, description = ?, project_type = ?, owner_id = ?, updated_at = ?
		 WHERE id = ?`,
		p.ShortID, p.Name, p.Description, string(p.TypeOrDefault()), p.OwnerID, formatTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return requireAffected(res, "project "+p.ID)
}

// Delete removes the project; ideas, insights and files cascade.
func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return requireAffected(res, "project "+id)
}

func scanProject(s rowScanner) (*domain.Project, error) {
	var p domain.Project
	var projectType, createdAt, updatedAt string
	if err := s.Scan(&p.ID, &p.ShortID, &p.Name, &p.Description, &projectType, &p.OwnerID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.ProjectType = domain.ProjectType(projectType)
	if err := parseTimestamps(
		ts("created_at", createdAt, &p.CreatedAt),
		ts("updated_at", updatedAt, &p.UpdatedAt),
	); err != nil {
		return nil, err
	}
	return &p, nil
}
