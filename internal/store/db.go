package store

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the task store depends on. Both *sql.DB and
// *sql.Tx satisfy it, so the same store methods serve plain reads and the
// row-locked lifecycle writes that run inside RunInTransaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
