package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/prioritas/internal/db"
)

// FailOnNthWriteUoW runs fn in a real transaction but makes the Nth
// ExecContext call (counting from 1) return Err. Reads are not counted.
// Use it to prove that a multi-row write leaves nothing behind on failure.
type FailOnNthWriteUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &nthWriteFails{DBTX: tx, failOn: u.FailOn, err: u.Err}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type nthWriteFails struct {
	db.DBTX
	writes atomic.Int32
	failOn int32
	err    error
}

func (f *nthWriteFails) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.writes.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
