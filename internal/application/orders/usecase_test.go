package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Confecciones-api/internal/application/apptest"
	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

var fixedNow = time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)

func newTestUseCase(t *testing.T) (*OrderUseCase, *apptest.Store) {
	t.Helper()
	s := apptest.NewStore()
	s.Customers["c1"] = entity.Customer{ID: "c1", Name: "Colegio San José"}
	s.Products["p1"] = entity.Product{ID: "p1", Code: "CAM-01", Name: "Camisa", BasePrice: decimal.NewFromInt(30000)}
	s.Products["p2"] = entity.Product{ID: "p2", Code: "PAN-01", Name: "Pantalón", BasePrice: decimal.NewFromInt(45000)}
	uc := NewOrderUseCase(s.OrderRepo(), s.CustomerRepo(), s.ProductRepo(), s.AssignmentRepo(), apptest.NewTxRunner(s))
	uc.now = func() time.Time { return fixedNow }
	return uc, s
}

func validRequest() dto.OrderRequest {
	return dto.OrderRequest{
		CustomerID: "c1",
		DueDate:    fixedNow.Add(72 * time.Hour),
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: 10},
			{ProductID: "p2", Quantity: 5, UnitPrice: decimal.NewFromInt(40000)},
		},
	}
}

func TestCreate_PedidoPendienteConPrecioBase(t *testing.T) {
	uc, s := newTestUseCase(t)

	out, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int(entity.OrderPending), out.Status)
	assert.Equal(t, "Pendiente", out.StatusLabel)
	assert.Equal(t, 15, out.ItemCount)
	assert.True(t, decimal.NewFromInt(500000).Equal(out.Total), out.Total.String())
	assert.Equal(t, []int{int(entity.OrderInProgress), int(entity.OrderCancelled)}, out.NextStatuses)
	require.Contains(t, s.Orders, out.ID)
	assert.Len(t, s.Orders[out.ID].Items, 2)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, s := newTestUseCase(t)

	cases := map[string]func(*dto.OrderRequest){
		"sin fecha":            func(r *dto.OrderRequest) { r.DueDate = time.Time{} },
		"sin líneas":           func(r *dto.OrderRequest) { r.Items = nil },
		"cliente inexistente":  func(r *dto.OrderRequest) { r.CustomerID = "nadie" },
		"cantidad cero":        func(r *dto.OrderRequest) { r.Items[0].Quantity = 0 },
		"precio negativo":      func(r *dto.OrderRequest) { r.Items[0].UnitPrice = decimal.NewFromInt(-1) },
		"producto inexistente": func(r *dto.OrderRequest) { r.Items[1].ProductID = "p9" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validRequest()
			mutate(&in)
			_, err := uc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, s.Orders)
}

func TestChangeStatus_FlujoCompleto(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)

	steps := []func(context.Context, string) (*dto.OrderResponse, error){uc.Start, uc.Produce, uc.Complete, uc.Deliver}
	want := []entity.OrderStatus{entity.OrderInProgress, entity.OrderInProduction, entity.OrderCompleted, entity.OrderDelivered}
	for i, step := range steps {
		out, err := step(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, int(want[i]), out.Status)
		assert.Equal(t, want[i], s.Orders[created.ID].Status)
	}

	_, err = uc.Cancel(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.OrderDelivered, s.Orders[created.ID].Status)
}

func TestChangeStatus_IlegalNoModificaEstado(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = uc.Complete(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Equal(t, entity.OrderPending, s.Orders[created.ID].Status)
	}
}

func TestChangeStatus_RepetirTransicionSeRechaza(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = uc.ChangeStatus(ctx, created.ID, entity.OrderInProgress)
	require.NoError(t, err)
	_, err = uc.ChangeStatus(ctx, created.ID, entity.OrderInProgress)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.OrderInProgress, s.Orders[created.ID].Status)
}

func TestChangeStatus_EstadoDesconocidoYPedidoInexistente(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.ChangeStatus(ctx, "x", entity.OrderStatus(9))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Start(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_ReemplazaLineasYRechazaTerminal(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)

	in := validRequest()
	in.Items = []dto.OrderItemRequest{{ProductID: "p2", Quantity: 2}}
	in.Notes = "bordado en el bolsillo"
	out, err := uc.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 2, out.ItemCount)
	assert.Len(t, s.Orders[created.ID].Items, 1)
	assert.Equal(t, "bordado en el bolsillo", s.Orders[created.ID].Notes)

	_, err = uc.Cancel(ctx, created.ID)
	require.NoError(t, err)
	_, err = uc.Update(ctx, created.ID, in)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// cancelBeforeTx simula otra petición que cancela el pedido entre la lectura y la transacción.
type cancelBeforeTx struct {
	s     *apptest.Store
	inner *apptest.TxRunner
	id    string
}

func (r cancelBeforeTx) RunOrders(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	o := r.s.Orders[r.id]
	o.Status = entity.OrderCancelled
	r.s.Orders[r.id] = o
	return r.inner.RunOrders(ctx, fn)
}

func TestUpdate_CancelacionConcurrenteNoSeRevierte(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)
	_, err = uc.Start(ctx, created.ID)
	require.NoError(t, err)

	uc.tx = cancelBeforeTx{s: s, inner: apptest.NewTxRunner(s), id: created.ID}
	in := validRequest()
	in.Notes = "cambio tardío"
	_, err = uc.Update(ctx, created.ID, in)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.OrderCancelled, s.Orders[created.ID].Status)
	assert.Empty(t, s.Orders[created.ID].Notes)
}

func TestUpdate_ConservaElEstadoGuardado(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)
	_, err = uc.Start(ctx, created.ID)
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, validRequest())
	require.NoError(t, err)
	assert.Equal(t, int(entity.OrderInProgress), out.Status)
	assert.Equal(t, entity.OrderInProgress, s.Orders[created.ID].Status)
}

func TestProgress_SumaAsignacionesDeProductosDistintos(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)

	statuses := []entity.AssignmentStatus{
		entity.AssignmentCompleted, entity.AssignmentCompleted, entity.AssignmentCompleted, entity.AssignmentCompleted,
		entity.AssignmentInProgress, entity.AssignmentInProgress, entity.AssignmentInProgress,
		entity.AssignmentPending, entity.AssignmentPaused, entity.AssignmentPending,
	}
	for i, st := range statuses {
		product := "p1"
		if i%2 == 1 {
			product = "p2"
		}
		id := string(rune('a' + i))
		s.Assignments[id] = entity.TaskAssignment{ID: id, ProductID: product, Status: st}
	}
	s.Assignments["otro"] = entity.TaskAssignment{ID: "otro", ProductID: "p3", Status: entity.AssignmentCompleted}

	p, err := uc.Progress(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.TotalAssignments)
	assert.Equal(t, 4, p.CompletedAssignments)
	assert.Equal(t, 3, p.InProgressAssignments)
	assert.Equal(t, 3, p.PendingAssignments)
	assert.True(t, decimal.NewFromInt(40).Equal(p.PercentComplete), p.PercentComplete.String())
	assert.Equal(t, dto.TimeRemainingDTO{Days: 3}, p.TimeRemaining)
	assert.False(t, p.IsOverdue)
}

func TestProgress_SinAsignaciones(t *testing.T) {
	uc, _ := newTestUseCase(t)
	created, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	p, err := uc.Progress(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, p.PercentComplete.IsZero())
	assert.Zero(t, p.TotalAssignments)
}

func TestList_FiltraPorEstado(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()
	a, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)
	_, err = uc.Create(ctx, validRequest())
	require.NoError(t, err)
	_, err = uc.Start(ctx, a.ID)
	require.NoError(t, err)

	out, err := uc.List(ctx, repository.OrderFilter{Status: entity.OrderInProgress, Limit: 20})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, a.ID, out.Items[0].ID)

	_, err = uc.List(ctx, repository.OrderFilter{Status: entity.OrderStatus(7)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type failingTx struct{}

func (failingTx) RunOrders(context.Context, func(repository.OrderRepository) error) error {
	return errors.New("conexión perdida")
}

func TestCreate_FallaDeTransaccionNoPersiste(t *testing.T) {
	uc, s := newTestUseCase(t)
	uc.tx = failingTx{}

	_, err := uc.Create(context.Background(), validRequest())
	require.Error(t, err)
	assert.Empty(t, s.Orders)
}

func TestDelete(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.Empty(t, s.Orders)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
}
