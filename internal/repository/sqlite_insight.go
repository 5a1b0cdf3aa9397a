package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/prioritas/internal/db"
	"github.com/alexanderramin/prioritas/internal/domain"
)

type SQLiteInsightRepo struct {
	db db.DBTX
}

func NewSQLiteInsightRepo(conn db.DBTX) *SQLiteInsightRepo {
	return &SQLiteInsightRepo{db: conn}
}

const insightColumns = `id, project_id, name, version, idea_count, owner_id, report_json, created_at`

// Save computes the next version and inserts in a single statement, so two
// writers on the same project cannot both claim a version.
func (r *SQLiteInsightRepo) Save(ctx context.Context, rec *domain.InsightRecord) error {
	report, err := json.Marshal(rec.Report)
	if err != nil {
		return fmt.Errorf("encoding insights report: %w", err)
	}
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO insights (`+insightColumns+`)
		 SELECT ?, ?, ?, COALESCE(MAX(version), 0) + 1, ?, ?, ?, ?
		 FROM insights WHERE project_id = ?
		 RETURNING version`,
		rec.ID, rec.ProjectID, rec.Name, rec.IdeaCount, rec.OwnerID, string(report),
		formatTime(rec.CreatedAt), rec.ProjectID,
	)
	if err := row.Scan(&rec.Version); err != nil {
		return fmt.Errorf("inserting insight: %w", err)
	}
	return nil
}

func (r *SQLiteInsightRepo) GetByID(ctx context.Context, id string) (*domain.InsightRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+insightColumns+` FROM insights WHERE id = ?`, id)
	rec, err := scanInsight(row)
	if err != nil {
		return nil, notFound("insight "+id, err)
	}
	return rec, nil
}

func (r *SQLiteInsightRepo) GetLatest(ctx context.Context, projectID string) (*domain.InsightRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+insightColumns+` FROM insights WHERE project_id = ? ORDER BY version DESC LIMIT 1`, projectID)
	rec, err := scanInsight(row)
	if err != nil {
		return nil, notFound("insights for project "+projectID, err)
	}
	return rec, nil
}

// ListByProject returns the history newest first.
func (r *SQLiteInsightRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.InsightRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+insightColumns+` FROM insights WHERE project_id = ? ORDER BY version DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing insights: %w", err)
	}
	defer rows.Close()

	var out []*domain.InsightRecord
	for rows.Next() {
		rec, err := scanInsight(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning insight: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteInsightRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM insights WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting insight: %w", err)
	}
	return requireAffected(res, "insight "+id)
}

func scanInsight(s rowScanner) (*domain.InsightRecord, error) {
	var rec domain.InsightRecord
	var reportJSON, createdAt string
	if err := s.Scan(&rec.ID, &rec.ProjectID, &rec.Name, &rec.Version, &rec.IdeaCount,
		&rec.OwnerID, &reportJSON, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(reportJSON), &rec.Report); err != nil {
		return nil, fmt.Errorf("decoding report_json: %w", err)
	}
	if err := parseTimestamps(ts("created_at", createdAt, &rec.CreatedAt)); err != nil {
		return nil, err
	}
	return &rec, nil
}
