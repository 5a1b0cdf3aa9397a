package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/prioritas/internal/db"
	"github.com/alexanderramin/prioritas/internal/domain"
)

type SQLiteIdeaRepo struct {
	db db.DBTX
}

func NewSQLiteIdeaRepo(conn db.DBTX) *SQLiteIdeaRepo {
	return &SQLiteIdeaRepo{db: conn}
}

const ideaColumns = `id, project_id, content, details, priority, x, y, created_by, created_at, updated_at`

// Create normalizes the idea before inserting so stored rows always satisfy
// the priority and position checks.
func (r *SQLiteIdeaRepo) Create(ctx context.Context, i *domain.Idea) error {
	i.Normalize()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ideas (`+ideaColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.ProjectID, i.Content, i.Details, string(i.Priority), i.X, i.Y, i.CreatedBy,
		formatTime(i.CreatedAt), formatTime(i.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting idea: %w", err)
	}
	return nil
}

func (r *SQLiteIdeaRepo) GetByID(ctx context.Context, id string) (*domain.Idea, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ideaColumns+` FROM ideas WHERE id = ?`, id)
	i, err := scanIdea(row)
	if err != nil {
		return nil, notFound("idea "+id, err)
	}
	return i, nil
}

// ListByProject returns ideas in insertion order.
func (r *SQLiteIdeaRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Idea, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+ideaColumns+` FROM ideas WHERE project_id = ? ORDER BY created_at, rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing ideas: %w", err)
	}
	defer rows.Close()

	var ideas []*domain.Idea
	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning idea: %w", err)
		}
		ideas = append(ideas, i)
	}
	return ideas, rows.Err()
}

func (r *SQLiteIdeaRepo) CountByProject(ctx context.Context, projectID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ideas WHERE project_id = ?`, projectID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting ideas: %w", err)
	}
	return n, nil
}

func (r *SQLiteIdeaRepo) Update(ctx context.Context, i *domain.Idea) error {
	i.Normalize()
	res, err := r.db.ExecContext(ctx,
		`UPDATE ideas SET content = ?, details = ?, priority = ?, x = ?, y = ?, updated_at = ? WHERE id = ?`,
		i.Content, i.Details, string(i.Priority), i.X, i.Y, formatTime(i.UpdatedAt), i.ID,
	)
	if err != nil {
		return fmt.Errorf("updating idea: %w", err)
	}
	return requireAffected(res, "idea "+i.ID)
}

func (r *SQLiteIdeaRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ideas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting idea: %w", err)
	}
	return requireAffected(res, "idea "+id)
}

func scanIdea(s rowScanner) (*domain.Idea, error) {
	var i domain.Idea
	var priority, createdAt, updatedAt string
	if err := s.Scan(&i.ID, &i.ProjectID, &i.Content, &i.Details, &priority, &i.X, &i.Y,
		&i.CreatedBy, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	i.Priority = domain.Priority(priority)
	if err := parseTimestamps(
		ts("created_at", createdAt, &i.CreatedAt),
		ts("updated_at", updatedAt, &i.UpdatedAt),
	); err != nil {
		return nil, err
	}
	return &i, nil
}
