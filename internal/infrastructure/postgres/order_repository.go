package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderSelect = `
	SELECT o.id, o.customer_id, COALESCE(c.name, ''), o.registered_at, o.due_date, o.status, o.notes, o.updated_at
	FROM orders o
	LEFT JOIN customers c ON c.id = o.customer_id`

// OrderRepo pedidos y sus líneas. Create y Update escriben varias sentencias:
// se usan dentro de TxRunner.RunOrders.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta cabecera y líneas.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, customer_id, registered_at, due_date, status, notes, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, o.CustomerID, o.RegisteredAt, o.DueDate, int32(o.Status), o.Notes, o.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el cliente no existe", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return r.insertItems(ctx, o)
}

func (r *OrderRepo) insertItems(ctx context.Context, o *entity.Order) error {
	for i, it := range o.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, line_no, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, o.ID, i+1, it.ProductID, it.Quantity, it.UnitPrice,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: el producto %s no existe", domain.ErrInvalidInput, it.ProductID)
			}
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID carga el pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := attachItems(ctx, r.q, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List pedidos más recientes primero, filtrando por estado y cliente.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	query := orderSelect + `
		WHERE ($1 = 0 OR o.status = $1) AND ($2 = '' OR o.customer_id::text = $2)
		ORDER BY o.registered_at DESC
		LIMIT $3 OFFSET $4`
	return queryOrders(ctx, r.q, query, int32(f.Status), f.CustomerID, limitArg(f.Limit), f.Offset)
}

// Update actualiza la cabecera y reemplaza las líneas. El estado no se toca: solo
// lo cambia UpdateStatus. Un pedido que ya está Cancelado (5) o Entregado (6) no se
// modifica aunque haya pasado a terminal después de leerlo.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	var status int32
	err := r.q.QueryRow(ctx, `
		UPDATE orders SET customer_id = $2, due_date = $3, notes = $4, updated_at = $5
		WHERE id = $1 AND status NOT IN (5, 6)
		RETURNING status`,
		o.ID, o.CustomerID, o.DueDate, o.Notes, o.UpdatedAt,
	).Scan(&status)
	if err != nil {
		if isNoRows(err) {
			return r.notEditable(ctx, o.ID)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el cliente no existe", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update order: %w", err)
	}
	o.Status = entity.OrderStatus(status)
	if _, err := r.q.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, o.ID); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	return r.insertItems(ctx, o)
}

// notEditable distingue pedido inexistente de pedido terminal tras un Update sin filas.
func (r *OrderRepo) notEditable(ctx context.Context, id string) error {
	var status int32
	err := r.q.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get order status: %w", err)
	}
	return fmt.Errorf("%w: el pedido está %s", domain.ErrConflict, entity.OrderStatus(status).Label())
}

// UpdateStatus persiste solo el estado.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	cmd, err := r.q.Exec(ctx, `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, int32(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el pedido; las líneas caen en cascada.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

// queryOrders ejecuta una consulta con las columnas de orderSelect y adjunta las líneas.
func queryOrders(ctx context.Context, q Querier, query string, args ...any) ([]*entity.Order, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if err := attachItems(ctx, q, list); err != nil {
		return nil, err
	}
	return list, nil
}

// attachItems carga en una sola consulta las líneas de todos los pedidos dados.
func attachItems(ctx context.Context, q Querier, list []*entity.Order) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(list))
	ids := make([]string, 0, len(list))
	for _, o := range list {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows, err := q.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.unit_price
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id::text = ANY($1::text[])
		ORDER BY oi.order_id, oi.line_no`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var status int32
	if err := row.Scan(&o.ID, &o.CustomerID, &o.CustomerName, &o.RegisteredAt, &o.DueDate, &status, &o.Notes, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}
