package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent, so the
// full list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillShortIDs(db); err != nil {
		return fmt.Errorf("backfilling project short ids: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		project_type TEXT NOT NULL DEFAULT 'general',
		owner_id     TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	// Added after the first release; older databases get it through ALTER.
	`ALTER TABLE projects ADD COLUMN short_id TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS ideas (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		content    TEXT NOT NULL,
		details    TEXT NOT NULL DEFAULT '',
		priority   TEXT NOT NULL DEFAULT 'moderate'
		           CHECK(priority IN ('low','moderate','high','strategic','innovation')),
		x          INTEGER NOT NULL DEFAULT 260 CHECK(x BETWEEN -50 AND 800),
		y          INTEGER NOT NULL DEFAULT 260 CHECK(y BETWEEN -50 AND 800),
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_ideas_project ON ideas(project_id)`,

	`CREATE TABLE IF NOT EXISTS insights (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name        TEXT NOT NULL DEFAULT '',
		version     INTEGER NOT NULL CHECK(version > 0),
		idea_count  INTEGER NOT NULL DEFAULT 0,
		owner_id    TEXT NOT NULL DEFAULT '',
		report_json TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		UNIQUE(project_id, version)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_insights_project ON insights(project_id)`,

	`CREATE TABLE IF NOT EXISTS project_files (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		mime_type       TEXT NOT NULL DEFAULT '',
		size_bytes      INTEGER NOT NULL DEFAULT 0,
		content_preview TEXT NOT NULL DEFAULT '',
		uploaded_by     TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_project_files_project ON project_files(project_id)`,
}

// migrateBackfillShortIDs assigns a short id to projects created before the
// column existed: up to six letters of the name plus a two-digit counter.
// The unique index is created afterwards so the backfill cannot collide
// with it.
func migrateBackfillShortIDs(db *sql.DB) error {
	ctx := context.Background()

	rows, err := db.QueryContext(ctx, `SELECT id, name FROM projects WHERE short_id = '' ORDER BY created_at`)
	if err != nil {
		return fmt.Errorf("listing projects without short id: %w", err)
	}
	type pending struct{ id, name string }
	var todo []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.name); err != nil {
			rows.Close()
			return fmt.Errorf("scanning project: %w", err)
		}
		todo = append(todo, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating projects: %w", err)
	}

	for _, p := range todo {
		prefix := shortIDPrefix(p.name)
		for n := 1; n < 10000; n++ {
			candidate := fmt.Sprintf("%s%02d", prefix, n)
			var exists int
			if err := db.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM projects WHERE UPPER(short_id) = ?`, candidate).Scan(&exists); err != nil {
				return fmt.Errorf("checking short id %s: %w", candidate, err)
			}
			if exists > 0 {
				continue
			}
			if _, err := db.ExecContext(ctx,
				`UPDATE projects SET short_id = ? WHERE id = ?`, candidate, p.id); err != nil {
				return fmt.Errorf("assigning short id to %s: %w", p.id, err)
			}
			break
		}
	}

	if _, err := db.ExecContext(ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id)`); err != nil {
		return fmt.Errorf("creating idx_projects_short_id: %w", err)
	}
	return nil
}

func shortIDPrefix(name string) string {
	var letters []rune
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			letters = append(letters, r)
			if len(letters) == 6 {
				break
			}
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	return string(letters)
}
