package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier es lo que los repositorios necesitan para ejecutar SQL. Lo cumplen
// *pgxpool.Pool y pgx.Tx, así el mismo repo sirve fuera y dentro de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner abre transacciones (pool real o pgxmock en pruebas).
type TxBeginner interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}
