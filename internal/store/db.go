package store

import (
	"context"
	"database/sql"
)

// DBTX is the query surface a card store runs against. Both *sql.DB and
// *sql.Tx satisfy it, so the same store can serve standalone reads and
// participate in import or restore transactions via WithTx.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}
