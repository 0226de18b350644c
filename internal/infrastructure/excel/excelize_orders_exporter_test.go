package excel

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Confecciones-api/internal/application/reports"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/production"
)

func TestExportOrders(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	rows := []reports.OrderRow{
		{
			Order: &entity.Order{
				ID: "o1", CustomerName: "Colegio San José", Status: entity.OrderInProduction,
				RegisteredAt: now.AddDate(0, 0, -30), DueDate: now.AddDate(0, 0, -1),
				Items: []entity.OrderItem{{Quantity: 10, UnitPrice: decimal.NewFromInt(25000)}},
			},
			Progress: production.Progress{PercentComplete: decimal.NewFromInt(50), Overdue: true},
		},
		{
			Order:    &entity.Order{ID: "o2", CustomerName: "Club Deportivo", Status: entity.OrderPending, DueDate: now.AddDate(0, 1, 0)},
			Progress: production.Progress{},
		},
	}

	out, err := NewOrdersExporter().ExportOrders(context.Background(), rows, now)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Pedidos", "Resumen"}, f.GetSheetList())

	header, err := f.GetCellValue("Pedidos", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Pedido", header)

	for cell, want := range map[string]string{
		"A2": "o1", "B2": "Colegio San José", "E2": "En producción", "I2": "Sí",
		"A3": "o2", "E3": "Pendiente", "I3": "No",
	} {
		got, err := f.GetCellValue("Pedidos", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}

	total, err := f.GetCellValue("Resumen", "B10")
	require.NoError(t, err)
	assert.Equal(t, "2", total)
	pending, err := f.GetCellValue("Resumen", "B4")
	require.NoError(t, err)
	assert.Equal(t, "1", pending)
}

func TestExportOrders_SinPedidos(t *testing.T) {
	out, err := NewOrdersExporter().ExportOrders(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
