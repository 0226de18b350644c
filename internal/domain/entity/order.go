package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order pedido de un cliente. Las líneas pertenecen al pedido y se eliminan con él.
type Order struct {
	ID           string
	CustomerID   string
	CustomerName string // solo lectura (join)
	RegisteredAt time.Time
	DueDate      time.Time
	Status       OrderStatus
	Notes        string
	Items        []OrderItem
	UpdatedAt    time.Time
}

// OrderItem línea de pedido.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string // solo lectura (join)
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Subtotal cantidad × precio unitario.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total suma de los subtotales de las líneas.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// ItemCount suma de cantidades.
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// IsOverdue la fecha de entrega pasó y el pedido no está Completado.
func (o *Order) IsOverdue(now time.Time) bool {
	return now.After(o.DueDate) && o.Status != OrderCompleted
}

// ProductIDs productos distintos referenciados por las líneas, en orden de aparición.
func (o *Order) ProductIDs() []string {
	seen := make(map[string]struct{}, len(o.Items))
	out := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		out = append(out, it.ProductID)
	}
	return out
}
