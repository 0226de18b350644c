package orders

import (
	"context"

	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el repositorio de
// pedidos atado a esa tx. Cabecera y líneas se escriben todo o nada.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}
