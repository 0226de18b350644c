package repository

import (
	"context"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

// OrderFilter criterios de listado de pedidos.
type OrderFilter struct {
	Status     entity.OrderStatus // 0 = todos
	CustomerID string
	Limit      int
	Offset     int
}

// OrderRepository persistencia de pedidos con sus líneas.
type OrderRepository interface {
	// Create inserta cabecera y líneas.
	Create(ctx context.Context, o *entity.Order) error
	// GetByID carga el pedido con sus líneas; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
	// Update actualiza la cabecera y reemplaza las líneas.
	Update(ctx context.Context, o *entity.Order) error
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
	// Delete elimina el pedido; las líneas se eliminan en cascada.
	Delete(ctx context.Context, id string) error
}
