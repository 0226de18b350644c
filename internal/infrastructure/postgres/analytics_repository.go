package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura del tablero de producción.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// NextDueOrder pedido con la entrega más próxima entre los estados dados.
// A igual fecha gana el registrado primero.
func (r *AnalyticsRepo) NextDueOrder(ctx context.Context, statuses []entity.OrderStatus) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, orderSelect+`
		WHERE o.status = ANY($1)
		ORDER BY o.due_date, o.registered_at
		LIMIT 1`, orderStatusArgs(statuses)))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("next due order: %w", err)
	}
	if err := attachItems(ctx, r.q, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// OrdersByStatus pedidos en los estados dados por fecha de entrega.
func (r *AnalyticsRepo) OrdersByStatus(ctx context.Context, statuses []entity.OrderStatus, limit int) ([]*entity.Order, error) {
	return queryOrders(ctx, r.q, orderSelect+`
		WHERE o.status = ANY($1)
		ORDER BY o.due_date, o.registered_at
		LIMIT $2`, orderStatusArgs(statuses), limitArg(limit))
}

// CountRegisteredBetween pedidos registrados en [from, to], ambos incluidos.
func (r *AnalyticsRepo) CountRegisteredBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE registered_at BETWEEN $1 AND $2`, from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count orders between: %w", err)
	}
	return n, nil
}

// CountOverdueOrders entrega vencida y ni Completado (4) ni Cancelado (5).
func (r *AnalyticsRepo) CountOverdueOrders(ctx context.Context, now time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE due_date < $1 AND status NOT IN (4, 5)`, now).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count overdue orders: %w", err)
	}
	return n, nil
}

// OverdueOrders los más atrasados primero.
func (r *AnalyticsRepo) OverdueOrders(ctx context.Context, now time.Time, limit int) ([]*entity.Order, error) {
	return queryOrders(ctx, r.q, orderSelect+`
		WHERE o.due_date < $1 AND o.status NOT IN (4, 5)
		ORDER BY o.due_date
		LIMIT $2`, now, limitArg(limit))
}

// OverdueAssignments fecha de fin vencida y no Completada (4), igual que TaskAssignment.IsOverdue.
func (r *AnalyticsRepo) OverdueAssignments(ctx context.Context, now time.Time, limit int) ([]*entity.TaskAssignment, error) {
	return queryAssignments(ctx, r.q, assignmentSelect+`
		WHERE a.end_at IS NOT NULL AND a.end_at < $1 AND a.status <> 4
		ORDER BY a.end_at
		LIMIT $2`, now, limitArg(limit))
}

func (r *AnalyticsRepo) AssignmentCountsByProduct(ctx context.Context, productIDs []string) (map[string]entity.AssignmentCounts, error) {
	return assignmentCountsByProduct(ctx, r.q, productIDs)
}
