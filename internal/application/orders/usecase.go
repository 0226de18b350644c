// Package orders contiene los casos de uso del ciclo de vida de un pedido: alta y
// edición con sus líneas, motor de cambios de estado y vista de avance de producción.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/production"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

// OrderUseCase orquesta pedidos. Las escrituras de cabecera + líneas pasan por TxRunner.
type OrderUseCase struct {
	orderRepo      repository.OrderRepository
	customerRepo   repository.CustomerRepository
	productRepo    repository.ProductRepository
	assignmentRepo repository.TaskAssignmentRepository
	tx             TxRunner
	now            func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	assignmentRepo repository.TaskAssignmentRepository,
	tx TxRunner,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:      orderRepo,
		customerRepo:   customerRepo,
		productRepo:    productRepo,
		assignmentRepo: assignmentRepo,
		tx:             tx,
		now:            time.Now,
	}
}

// Create registra un pedido en estado Pendiente junto con sus líneas.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.OrderRequest) (*dto.OrderResponse, error) {
	customer, items, err := uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	order := &entity.Order{
		ID:           uuid.New().String(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		RegisteredAt: now,
		DueDate:      in.DueDate,
		Status:       entity.OrderPending,
		Notes:        in.Notes,
		Items:        items,
		UpdatedAt:    now,
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	err = uc.tx.RunOrders(ctx, func(orderRepo repository.OrderRepository) error {
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("crear pedido: %w", err)
	}
	return ToOrderResponse(order, now), nil
}

// Update reemplaza cabecera y líneas. Un pedido Entregado o Cancelado ya no se edita.
func (uc *OrderUseCase) Update(ctx context.Context, id string, in dto.OrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: el pedido está %s", domain.ErrConflict, order.Status.Label())
	}
	customer, items, err := uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	order.CustomerID = customer.ID
	order.CustomerName = customer.Name
	order.DueDate = in.DueDate
	order.Notes = in.Notes
	order.Items = items
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	now := uc.now()
	order.UpdatedAt = now
	err = uc.tx.RunOrders(ctx, func(orderRepo repository.OrderRepository) error {
		return orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar pedido: %w", err)
	}
	return ToOrderResponse(order, now), nil
}

// GetByID obtiene un pedido con sus líneas.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(order, uc.now()), nil
}

// List lista pedidos; status 0 no filtra.
func (uc *OrderUseCase) List(ctx context.Context, f repository.OrderFilter) (*dto.OrderListResponse, error) {
	if f.Status != 0 && !f.Status.IsValid() {
		return nil, fmt.Errorf("%w: estado %d desconocido", domain.ErrInvalidInput, f.Status)
	}
	list, err := uc.orderRepo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}
	now := uc.now()
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *ToOrderResponse(o, now))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// Delete elimina el pedido; las líneas se van con él.
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	if err := uc.orderRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar pedido: %w", err)
	}
	return nil
}

// ChangeStatus aplica el motor de transiciones. Una transición ilegal se rechaza con
// ErrInvalidTransition antes de escribir nada.
func (uc *OrderUseCase) ChangeStatus(ctx context.Context, id string, target entity.OrderStatus) (*dto.OrderResponse, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: estado %d desconocido", domain.ErrInvalidInput, target)
	}
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransitionOrder(order.Status, target) {
		return nil, fmt.Errorf("%w: de %s a %s", domain.ErrInvalidTransition, order.Status.Label(), target.Label())
	}
	if err := uc.orderRepo.UpdateStatus(ctx, order.ID, target); err != nil {
		return nil, fmt.Errorf("cambiar estado del pedido: %w", err)
	}
	order.Status = target
	return ToOrderResponse(order, uc.now()), nil
}

// Start Pendiente → En proceso.
func (uc *OrderUseCase) Start(ctx context.Context, id string) (*dto.OrderResponse, error) {
	return uc.ChangeStatus(ctx, id, entity.OrderInProgress)
}

// Produce En proceso → En producción.
func (uc *OrderUseCase) Produce(ctx context.Context, id string) (*dto.OrderResponse, error) {
	return uc.ChangeStatus(ctx, id, entity.OrderInProduction)
}

// Complete En producción → Completado.
func (uc *OrderUseCase) Complete(ctx context.Context, id string) (*dto.OrderResponse, error) {
	return uc.ChangeStatus(ctx, id, entity.OrderCompleted)
}

// Deliver Completado → Entregado.
func (uc *OrderUseCase) Deliver(ctx context.Context, id string) (*dto.OrderResponse, error) {
	return uc.ChangeStatus(ctx, id, entity.OrderDelivered)
}

// Cancel desde cualquier estado en curso.
func (uc *OrderUseCase) Cancel(ctx context.Context, id string) (*dto.OrderResponse, error) {
	return uc.ChangeStatus(ctx, id, entity.OrderCancelled)
}

// Progress recalcula el avance del pedido a partir de las asignaciones de sus productos.
func (uc *OrderUseCase) Progress(ctx context.Context, id string) (*dto.OrderProgressResponse, error) {
	order, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := uc.ProgressOf(ctx, order)
	if err != nil {
		return nil, err
	}
	return ToProgressResponse(p), nil
}

// ProgressOf calcula el avance de un pedido ya cargado.
func (uc *OrderUseCase) ProgressOf(ctx context.Context, order *entity.Order) (production.Progress, error) {
	counts, err := uc.assignmentRepo.CountsByProduct(ctx, order.ProductIDs())
	if err != nil {
		return production.Progress{}, fmt.Errorf("conteo de asignaciones: %w", err)
	}
	return production.Calculate(order, counts, uc.now()), nil
}

// Load obtiene la entidad del pedido; ErrNotFound si no existe.
func (uc *OrderUseCase) Load(ctx context.Context, id string) (*entity.Order, error) {
	return uc.load(ctx, id)
}

func (uc *OrderUseCase) load(ctx context.Context, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// validate comprueba cliente, productos, cantidades y precios. Un precio unitario
// cero toma el precio base del producto.
func (uc *OrderUseCase) validate(ctx context.Context, in dto.OrderRequest) (*entity.Customer, []entity.OrderItem, error) {
	if in.DueDate.IsZero() {
		return nil, nil, fmt.Errorf("%w: la fecha de entrega es requerida", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, nil, fmt.Errorf("%w: el pedido debe tener al menos una línea", domain.ErrInvalidInput)
	}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, nil, fmt.Errorf("%w: el cliente %s no existe", domain.ErrInvalidInput, in.CustomerID)
	}
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", domain.ErrInvalidInput)
		}
		if it.UnitPrice.IsNegative() {
			return nil, nil, fmt.Errorf("%w: el precio unitario no puede ser negativo", domain.ErrInvalidInput)
		}
		product, err := uc.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, nil, fmt.Errorf("obtener producto: %w", err)
		}
		if product == nil {
			return nil, nil, fmt.Errorf("%w: el producto %s no existe", domain.ErrInvalidInput, it.ProductID)
		}
		price := it.UnitPrice
		if price.Equal(decimal.Zero) {
			price = product.BasePrice
		}
		items = append(items, entity.OrderItem{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   price,
		})
	}
	return customer, items, nil
}
