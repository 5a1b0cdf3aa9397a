package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// parseTimestamps parses RFC3339 columns into the given destinations,
// naming the failing column in the error.
func parseTimestamps(pairs ...timestampPair) error {
	for _, p := range pairs {
		t, err := time.Parse(time.RFC3339, p.raw)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", p.column, err)
		}
		*p.dst = t
	}
	return nil
}

type timestampPair struct {
	column string
	raw    string
	dst    *time.Time
}

func ts(column, raw string, dst *time.Time) timestampPair {
	return timestampPair{column: column, raw: raw, dst: dst}
}

// formatTime converts a time to the RFC3339 UTC form stored in SQLite.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// notFound maps sql.ErrNoRows onto ErrNotFound for the named entity.
func notFound(entity string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return fmt.Errorf("scanning %s: %w", entity, err)
}

// requireAffected returns ErrNotFound when an UPDATE or DELETE matched no row.
func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
