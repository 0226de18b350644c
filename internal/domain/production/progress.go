// Package production contiene los servicios de dominio de seguimiento de producción:
// avance de un pedido según las asignaciones de sus productos y agrupación por semestre.
package production

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// TimeRemaining tiempo hasta la entrega descompuesto en días, horas y minutos.
// Los componentes son negativos (o cero) cuando el pedido está vencido.
type TimeRemaining struct {
	Days    int
	Hours   int
	Minutes int
}

// NewTimeRemaining descompone due - now truncando hacia cero.
func NewTimeRemaining(due, now time.Time) TimeRemaining {
	d := due.Sub(now)
	return TimeRemaining{
		Days:    int(d / (24 * time.Hour)),
		Hours:   int(d/time.Hour) % 24,
		Minutes: int(d/time.Minute) % 60,
	}
}

// Progress vista derivada del avance de un pedido. Nunca se persiste.
type Progress struct {
	OrderID         string
	Total           int
	Completed       int
	InProgress      int
	Pending         int
	PercentComplete decimal.Decimal
	Remaining       TimeRemaining
	Overdue         bool
}

// Percent completadas/total*100 redondeado a 2 decimales; 0 si no hay asignaciones.
func Percent(completed, total int) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(completed)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(hundred).
		Round(2)
}

// Calculate suma los conteos de asignaciones de los productos distintos del pedido.
// counts se indexa por ID de producto; los productos sin entrada cuentan como cero.
func Calculate(order *entity.Order, counts map[string]entity.AssignmentCounts, now time.Time) Progress {
	p := Progress{OrderID: order.ID}
	for _, productID := range order.ProductIDs() {
		c := counts[productID]
		p.Total += c.Total
		p.Completed += c.Completed
		p.InProgress += c.InProgress
	}
	p.Pending = p.Total - p.Completed - p.InProgress
	p.PercentComplete = Percent(p.Completed, p.Total)
	p.Remaining = NewTimeRemaining(order.DueDate, now)
	p.Overdue = order.IsOverdue(now)
	return p
}

// Average promedio de porcentajes redondeado a 2 decimales; 0 si la lista está vacía.
func Average(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Avg(values[0], values[1:]...).Round(2)
}
