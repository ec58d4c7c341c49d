package postgres

import (
	"context"
	"database/sql"
)

// Queryer é satisfeita por *sql.DB e *sql.Tx
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
