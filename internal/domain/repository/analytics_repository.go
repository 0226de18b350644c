package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

// AnalyticsRepository define las consultas de lectura del tablero de producción.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// NextDueOrder pedido con la fecha de entrega más próxima entre los estados dados
	// (con sus líneas). nil si no hay ninguno.
	NextDueOrder(ctx context.Context, statuses []entity.OrderStatus) (*entity.Order, error)

	// OrdersByStatus pedidos en los estados dados, con sus líneas, ordenados por
	// fecha de entrega ascendente. limit <= 0 significa sin límite.
	OrdersByStatus(ctx context.Context, statuses []entity.OrderStatus, limit int) ([]*entity.Order, error)

	// CountRegisteredBetween pedidos registrados en [from, to].
	CountRegisteredBetween(ctx context.Context, from, to time.Time) (int, error)

	// CountOverdueOrders pedidos con entrega anterior a now que no están Completados ni Cancelados.
	CountOverdueOrders(ctx context.Context, now time.Time) (int, error)

	// OverdueOrders los pedidos vencidos más atrasados primero.
	OverdueOrders(ctx context.Context, now time.Time, limit int) ([]*entity.Order, error)

	// OverdueAssignments asignaciones con fecha de fin anterior a now y no Completadas.
	OverdueAssignments(ctx context.Context, now time.Time, limit int) ([]*entity.TaskAssignment, error)

	// AssignmentCountsByProduct conteos de asignaciones por producto (total, completadas, en progreso).
	AssignmentCountsByProduct(ctx context.Context, productIDs []string) (map[string]entity.AssignmentCounts, error)
}
