package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Confecciones-api/internal/application/assignments"
	"github.com/jhoicas/Confecciones-api/internal/application/orders"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

var (
	_ orders.TxRunner      = (*TxRunner)(nil)
	_ assignments.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db TxBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db TxBeginner) *TxRunner {
	return &TxRunner{db: db}
}

// RunOrders guarda cabecera y líneas de un pedido de forma atómica.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewOrderRepository(tx))
	})
}

// RunAssignments agrupa las altas de una asignación masiva: o entran todas o ninguna.
func (r *TxRunner) RunAssignments(ctx context.Context, fn func(assignmentRepo repository.TaskAssignmentRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewTaskAssignmentRepository(tx))
	})
}

// run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
