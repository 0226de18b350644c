package entity

import "github.com/jhoicas/Confecciones-api/internal/domain/workflow"

// OrderStatus estado de un pedido. Los valores numéricos se persisten y no deben reordenarse.
type OrderStatus int

const (
	OrderPending      OrderStatus = 1
	OrderInProgress   OrderStatus = 2
	OrderInProduction OrderStatus = 3
	OrderCompleted    OrderStatus = 4
	OrderCancelled    OrderStatus = 5
	OrderDelivered    OrderStatus = 6
)

// AllOrderStatuses en orden numérico.
var AllOrderStatuses = []OrderStatus{
	OrderPending, OrderInProgress, OrderInProduction, OrderCompleted, OrderCancelled, OrderDelivered,
}

var orderStatusLabels = map[OrderStatus]string{
	OrderPending:      "Pendiente",
	OrderInProgress:   "En proceso",
	OrderInProduction: "En producción",
	OrderCompleted:    "Completado",
	OrderCancelled:    "Cancelado",
	OrderDelivered:    "Entregado",
}

// Label devuelve el nombre visible del estado.
func (s OrderStatus) Label() string {
	if l, ok := orderStatusLabels[s]; ok {
		return l
	}
	return "Desconocido"
}

// IsValid indica si el valor pertenece a la enumeración.
func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// cancellableOrderStatuses estados "en curso" desde los que se puede cancelar.
// Coincide con los ordinales menores a OrderCancelled.
var cancellableOrderStatuses = map[OrderStatus]struct{}{
	OrderPending:      {},
	OrderInProgress:   {},
	OrderInProduction: {},
	OrderCompleted:    {},
}

// CanBeCancelled indica si un pedido en el estado s admite cancelación.
func CanBeCancelled(s OrderStatus) bool {
	_, ok := cancellableOrderStatuses[s]
	return ok
}

var orderMachine = func() *workflow.Machine[OrderStatus] {
	b := workflow.NewBuilder(AllOrderStatuses...).
		Allow(OrderPending, OrderInProgress).
		Allow(OrderInProgress, OrderInProduction).
		Allow(OrderInProduction, OrderCompleted).
		Allow(OrderCompleted, OrderDelivered).
		Terminal(OrderDelivered, OrderCancelled)
	for s := range cancellableOrderStatuses {
		b.Allow(s, OrderCancelled)
	}
	return b.Build()
}()

// CanTransitionOrder valida el paso de current a target: Delivered y Cancelled son
// sumideros, no se permiten transiciones nulas ni saltos, y Cancelled es una salida
// lateral desde cualquier estado en curso.
func CanTransitionOrder(current, target OrderStatus) bool {
	return orderMachine.CanTransition(current, target)
}

// AllowedOrderTransitions lista los destinos válidos desde current.
func AllowedOrderTransitions(current OrderStatus) []OrderStatus {
	return orderMachine.Allowed(current)
}

// IsTerminal indica si el pedido ya no admite cambios de estado.
func (s OrderStatus) IsTerminal() bool {
	return orderMachine.IsTerminal(s)
}

// IsActive estados considerados "pendientes" en el tablero.
func (s OrderStatus) IsActive() bool {
	return s == OrderPending || s == OrderInProgress || s == OrderInProduction
}
