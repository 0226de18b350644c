package entity_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

// nextLinearStep devuelve el paso siguiente del flujo feliz, si existe.
func nextLinearStep(s entity.OrderStatus) (entity.OrderStatus, bool) {
	switch s {
	case entity.OrderPending:
		return entity.OrderInProgress, true
	case entity.OrderInProgress:
		return entity.OrderInProduction, true
	case entity.OrderInProduction:
		return entity.OrderCompleted, true
	case entity.OrderCompleted:
		return entity.OrderDelivered, true
	}
	return 0, false
}

// Recorre todos los pares (actual, destino) y compara con la regla declarativa.
func TestCanTransitionOrder_TodosLosPares(t *testing.T) {
	for _, current := range entity.AllOrderStatuses {
		for _, target := range entity.AllOrderStatuses {
			next, hasNext := nextLinearStep(current)
			want := (hasNext && target == next) ||
				(target == entity.OrderCancelled && int(current) < int(entity.OrderCancelled))
			if current == entity.OrderDelivered || current == entity.OrderCancelled || current == target {
				want = false
			}
			name := fmt.Sprintf("%s->%s", current.Label(), target.Label())
			assert.Equal(t, want, entity.CanTransitionOrder(current, target), name)
		}
	}
}

func TestCanTransitionOrder_CasosConcretos(t *testing.T) {
	assert.True(t, entity.CanTransitionOrder(entity.OrderPending, entity.OrderInProgress))
	assert.False(t, entity.CanTransitionOrder(entity.OrderPending, entity.OrderInProduction), "no se permiten saltos")
	assert.True(t, entity.CanTransitionOrder(entity.OrderInProduction, entity.OrderCancelled))
	assert.True(t, entity.CanTransitionOrder(entity.OrderCompleted, entity.OrderCancelled))
	assert.False(t, entity.CanTransitionOrder(entity.OrderDelivered, entity.OrderCancelled))
	assert.False(t, entity.CanTransitionOrder(entity.OrderCancelled, entity.OrderInProgress))
	assert.False(t, entity.CanTransitionOrder(entity.OrderInProgress, entity.OrderPending), "no hay retrocesos")
}

func TestCanTransitionOrder_DestinoFueraDeEnumeracion(t *testing.T) {
	assert.False(t, entity.CanTransitionOrder(entity.OrderPending, entity.OrderStatus(99)))
	assert.False(t, entity.CanTransitionOrder(entity.OrderStatus(0), entity.OrderInProgress))
}

// El conjunto explícito de cancelables debe coincidir con la comparación por ordinal.
func TestCanBeCancelled_CoincideConOrdinal(t *testing.T) {
	for _, s := range entity.AllOrderStatuses {
		assert.Equal(t, int(s) < int(entity.OrderCancelled), entity.CanBeCancelled(s), s.Label())
	}
}

func TestOrderStatus_Valores(t *testing.T) {
	assert.Equal(t, 1, int(entity.OrderPending))
	assert.Equal(t, 2, int(entity.OrderInProgress))
	assert.Equal(t, 3, int(entity.OrderInProduction))
	assert.Equal(t, 4, int(entity.OrderCompleted))
	assert.Equal(t, 5, int(entity.OrderCancelled))
	assert.Equal(t, 6, int(entity.OrderDelivered))
}

func TestOrderStatus_Label(t *testing.T) {
	assert.Equal(t, "En producción", entity.OrderInProduction.Label())
	assert.Equal(t, "Entregado", entity.OrderDelivered.Label())
	assert.Equal(t, "Desconocido", entity.OrderStatus(42).Label())
	assert.False(t, entity.OrderStatus(42).IsValid())
}

func TestAllowedOrderTransitions(t *testing.T) {
	assert.Equal(t,
		[]entity.OrderStatus{entity.OrderCancelled, entity.OrderDelivered},
		entity.AllowedOrderTransitions(entity.OrderCompleted),
	)
	assert.Equal(t,
		[]entity.OrderStatus{entity.OrderInProgress, entity.OrderCancelled},
		entity.AllowedOrderTransitions(entity.OrderPending),
	)
	assert.Empty(t, entity.AllowedOrderTransitions(entity.OrderDelivered))
}
