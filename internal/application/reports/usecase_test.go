package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Confecciones-api/internal/application/apptest"
	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

type recordingGenerator struct {
	sheet OrderSheet
	rows  []OrderRow
}

func (g *recordingGenerator) GenerateOrderSheet(_ context.Context, sheet OrderSheet) ([]byte, error) {
	g.sheet = sheet
	return []byte("%PDF"), nil
}

func (g *recordingGenerator) ExportOrders(_ context.Context, rows []OrderRow, _ time.Time) ([]byte, error) {
	g.rows = rows
	return []byte("PK"), nil
}

func newTestUseCase() (*ReportUseCase, *apptest.Store, *recordingGenerator) {
	s := apptest.NewStore()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.Customers["c1"] = entity.Customer{ID: "c1", Name: "Colegio"}
	s.Orders["3f2a9c71-aaaa"] = entity.Order{
		ID: "3f2a9c71-aaaa", CustomerID: "c1", Status: entity.OrderInProduction,
		RegisteredAt: now, DueDate: now.Add(48 * time.Hour),
		Items: []entity.OrderItem{{ProductID: "p1", Quantity: 4, UnitPrice: decimal.NewFromInt(10)}},
	}
	s.Assignments["a1"] = entity.TaskAssignment{ID: "a1", ProductID: "p1", Status: entity.AssignmentCompleted}
	s.Assignments["a2"] = entity.TaskAssignment{ID: "a2", ProductID: "p1", Status: entity.AssignmentPending}
	g := &recordingGenerator{}
	uc := NewReportUseCase(s.OrderRepo(), s.CustomerRepo(), s.AssignmentRepo(), g, g)
	uc.now = func() time.Time { return now }
	return uc, s, g
}

func TestOrderSheetPDF(t *testing.T) {
	uc, _, g := newTestUseCase()

	out, name, err := uc.OrderSheetPDF(context.Background(), "3f2a9c71-aaaa")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)
	assert.Equal(t, "pedido_3f2a9c71.pdf", name)
	assert.Equal(t, "Colegio", g.sheet.Customer.Name)
	assert.Equal(t, 2, g.sheet.Progress.Total)
	assert.True(t, decimal.NewFromInt(50).Equal(g.sheet.Progress.PercentComplete))

	_, _, err = uc.OrderSheetPDF(context.Background(), "otro")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrdersExcel(t *testing.T) {
	uc, _, g := newTestUseCase()

	out, name, err := uc.OrdersExcel(context.Background(), repository.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), out)
	assert.Equal(t, "pedidos_20260301.xlsx", name)
	require.Len(t, g.rows, 1)
	assert.Equal(t, 1, g.rows[0].Progress.Completed)
}
