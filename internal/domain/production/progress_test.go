package production_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/production"
)

var refNow = time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)

func orderWith(due time.Time, status entity.OrderStatus, products ...string) *entity.Order {
	o := &entity.Order{ID: "ped-1", DueDate: due, Status: status}
	for _, p := range products {
		o.Items = append(o.Items, entity.OrderItem{ProductID: p, Quantity: 1, UnitPrice: decimal.NewFromInt(1000)})
	}
	return o
}

func TestCalculate_SinAsignaciones(t *testing.T) {
	o := orderWith(refNow.Add(72*time.Hour), entity.OrderPending, "camisa")

	p := production.Calculate(o, map[string]entity.AssignmentCounts{}, refNow)

	assert.True(t, p.PercentComplete.IsZero())
	assert.Zero(t, p.Total)
	assert.Zero(t, p.Pending)
}

func TestCalculate_DiezAsignaciones(t *testing.T) {
	o := orderWith(refNow.Add(26*time.Hour+30*time.Minute), entity.OrderInProduction, "camisa", "pantalon", "camisa")
	counts := map[string]entity.AssignmentCounts{
		"camisa":   {Total: 6, Completed: 3, InProgress: 1},
		"pantalon": {Total: 4, Completed: 1, InProgress: 2},
		"otro":     {Total: 50, Completed: 50},
	}

	p := production.Calculate(o, counts, refNow)

	assert.Equal(t, 10, p.Total, "el producto repetido se cuenta una sola vez")
	assert.Equal(t, 4, p.Completed)
	assert.Equal(t, 3, p.InProgress)
	assert.Equal(t, 3, p.Pending)
	assert.True(t, decimal.RequireFromString("40.00").Equal(p.PercentComplete), p.PercentComplete.String())
	assert.Equal(t, production.TimeRemaining{Days: 1, Hours: 2, Minutes: 30}, p.Remaining)
	assert.False(t, p.Overdue)
}

func TestCalculate_PedidoVencido(t *testing.T) {
	o := orderWith(refNow.Add(-(49*time.Hour + 15*time.Minute)), entity.OrderInProgress, "camisa")

	p := production.Calculate(o, nil, refNow)

	assert.True(t, p.Overdue)
	assert.Equal(t, production.TimeRemaining{Days: -2, Hours: -1, Minutes: -15}, p.Remaining)
}

func TestPercent_Redondeo(t *testing.T) {
	assert.Equal(t, "33.33", production.Percent(1, 3).StringFixed(2))
	assert.Equal(t, "66.67", production.Percent(2, 3).StringFixed(2))
	assert.Equal(t, "100.00", production.Percent(5, 5).StringFixed(2))
	assert.True(t, production.Percent(3, 0).IsZero())
}

func TestAverage(t *testing.T) {
	assert.True(t, production.Average(nil).IsZero())
	avg := production.Average([]decimal.Decimal{decimal.NewFromInt(40), decimal.NewFromInt(50), decimal.Zero})
	assert.Equal(t, "30.00", avg.StringFixed(2))
}
