package assignments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Confecciones-api/internal/application/apptest"
	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

var fixedNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

var (
	operario    = domain.Actor{UserID: "u1", Roles: []string{domain.RoleUser}}
	otroUsuario = domain.Actor{UserID: "u2", Roles: []string{domain.RoleUser}}
	jefe        = domain.Actor{UserID: "m1", Roles: []string{domain.RoleManager}}
)

func newTestUseCase(t *testing.T) (*AssignmentUseCase, *apptest.Store) {
	t.Helper()
	s := apptest.NewStore()
	for _, id := range []string{"u1", "u2"} {
		s.Users[id] = entity.User{ID: id, Username: id, Email: id + "@taller.co", Active: true}
	}
	for _, id := range []string{"p1", "p2"} {
		s.Products[id] = entity.Product{ID: id, Code: id}
	}
	for _, id := range []string{"t1", "t2"} {
		s.Tasks[id] = entity.Task{ID: id, Name: id}
	}
	uc := NewAssignmentUseCase(s.AssignmentRepo(), s.UserRepo(), s.ProductRepo(), s.TaskRepo(), apptest.NewTxRunner(s))
	uc.now = func() time.Time { return fixedNow }
	return uc, s
}

func createOne(t *testing.T, uc *AssignmentUseCase) *dto.AssignmentResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), dto.CreateAssignmentRequest{UserID: "u1", ProductID: "p1", TaskID: "t1"})
	require.NoError(t, err)
	return out
}

func TestCreate_RechazaTernaActivaDuplicada(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()
	first := createOne(t, uc)
	assert.Equal(t, "Pendiente", first.StatusLabel)
	assert.Equal(t, fixedNow, first.StartAt)

	_, err := uc.Create(ctx, dto.CreateAssignmentRequest{UserID: "u1", ProductID: "p1", TaskID: "t1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Una vez terminal, la terna admite una nueva asignación.
	_, err = uc.Complete(ctx, operario, first.ID)
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateAssignmentRequest{UserID: "u1", ProductID: "p1", TaskID: "t1"})
	require.NoError(t, err)
	assert.Len(t, s.Assignments, 2)
}

func TestCreate_ReferenciasInexistentes(t *testing.T) {
	uc, s := newTestUseCase(t)
	for _, in := range []dto.CreateAssignmentRequest{
		{UserID: "u9", ProductID: "p1", TaskID: "t1"},
		{UserID: "u1", ProductID: "p9", TaskID: "t1"},
		{UserID: "u1", ProductID: "p1", TaskID: "t9"},
	} {
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	assert.Empty(t, s.Assignments)
}

func TestCreate_FinAnteriorAlInicio(t *testing.T) {
	uc, _ := newTestUseCase(t)
	end := fixedNow.Add(-time.Hour)
	_, err := uc.Create(context.Background(), dto.CreateAssignmentRequest{UserID: "u1", ProductID: "p1", TaskID: "t1", EndAt: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func bulkRequest() dto.BulkAssignmentRequest {
	return dto.BulkAssignmentRequest{
		UserIDs:    []string{"u1", "u2"},
		ProductIDs: []string{"p1", "p2"},
		TaskIDs:    []string{"t1", "t2"},
	}
}

func TestBulkAssign_OmiteTernaExistente(t *testing.T) {
	uc, s := newTestUseCase(t)
	s.Assignments["previa"] = entity.TaskAssignment{
		ID: "previa", UserID: "u2", ProductID: "p1", TaskID: "t2", Status: entity.AssignmentInProgress,
	}

	out, err := uc.BulkAssign(context.Background(), bulkRequest())
	require.NoError(t, err)
	assert.Equal(t, 7, out.Created)
	assert.Equal(t, 1, out.Skipped)
	assert.Len(t, out.CreatedIDs, 7)
	assert.Len(t, s.Assignments, 8)
}

func TestBulkAssign_TernaTerminalNoSeOmite(t *testing.T) {
	uc, s := newTestUseCase(t)
	s.Assignments["vieja"] = entity.TaskAssignment{
		ID: "vieja", UserID: "u1", ProductID: "p1", TaskID: "t1", Status: entity.AssignmentCancelled,
	}

	out, err := uc.BulkAssign(context.Background(), bulkRequest())
	require.NoError(t, err)
	assert.Equal(t, 8, out.Created)
	assert.Zero(t, out.Skipped)
}

func TestBulkAssign_RepetidasEnLaPeticion(t *testing.T) {
	uc, _ := newTestUseCase(t)
	in := dto.BulkAssignmentRequest{UserIDs: []string{"u1", "u1"}, ProductIDs: []string{"p1"}, TaskIDs: []string{"t1"}}

	out, err := uc.BulkAssign(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Created)
	assert.Equal(t, 1, out.Skipped)
}

func TestBulkAssign_FallaEnQuintaAltaDeshaceTodo(t *testing.T) {
	uc, s := newTestUseCase(t)
	s.Assignments["previa"] = entity.TaskAssignment{
		ID: "previa", UserID: "u2", ProductID: "p1", TaskID: "t2", Status: entity.AssignmentPending,
	}
	s.Faults.FailAssignmentCreateAt = 5

	out, err := uc.BulkAssign(context.Background(), bulkRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, apptest.ErrInjected)
	assert.Nil(t, out)
	assert.Len(t, s.Assignments, 1, "solo queda la asignación previa")
}

func TestBulkAssign_ListasVacias(t *testing.T) {
	uc, _ := newTestUseCase(t)
	_, err := uc.BulkAssign(context.Background(), dto.BulkAssignmentRequest{UserIDs: []string{"u1"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChangeStatus_Autorizacion(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()
	a := createOne(t, uc)

	_, err := uc.Start(ctx, otroUsuario, a.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, entity.AssignmentPending, s.Assignments[a.ID].Status)

	// La autorización se evalúa antes que las reglas de negocio.
	_, err = uc.ChangeStatus(ctx, otroUsuario, a.ID, entity.AssignmentStatus(42))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Start(ctx, operario, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "En progreso", out.StatusLabel)

	out, err = uc.Pause(ctx, jefe, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int(entity.AssignmentPaused), out.Status)
}

func TestChangeStatus_CompletarFijaFinYEsTerminal(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()
	a := createOne(t, uc)

	uc.now = func() time.Time { return fixedNow.Add(90 * time.Minute) }
	out, err := uc.Complete(ctx, operario, a.ID)
	require.NoError(t, err)
	require.NotNil(t, out.EndAt)
	require.NotNil(t, out.DurationMinutes)
	assert.Equal(t, int64(90), *out.DurationMinutes)
	assert.Equal(t, fixedNow.Add(90*time.Minute), *s.Assignments[a.ID].EndAt)

	_, err = uc.Start(ctx, jefe, a.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, entity.AssignmentCompleted, s.Assignments[a.ID].Status)

	_, err = uc.Complete(ctx, operario, a.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestChangeStatus_MismoEstadoSeReaplica(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()
	a := createOne(t, uc)

	_, err := uc.Pause(ctx, operario, a.ID)
	require.NoError(t, err)
	out, err := uc.Pause(ctx, operario, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int(entity.AssignmentPaused), out.Status)
	assert.Equal(t, entity.AssignmentPaused, s.Assignments[a.ID].Status)

	_, err = uc.Complete(ctx, operario, a.ID)
	require.NoError(t, err)
	_, err = uc.Complete(ctx, operario, a.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "Completada es terminal")
}

func TestDelete_SoloSiNoEstaCompletada(t *testing.T) {
	uc, s := newTestUseCase(t)
	ctx := context.Background()
	a := createOne(t, uc)
	_, err := uc.Complete(ctx, operario, a.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, a.ID), domain.ErrConflict)
	assert.Len(t, s.Assignments, 1)

	b, err := uc.Create(ctx, dto.CreateAssignmentRequest{UserID: "u2", ProductID: "p2", TaskID: "t2"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, b.ID))
	assert.ErrorIs(t, uc.Delete(ctx, b.ID), domain.ErrNotFound)
}

func TestList_FiltraPorUsuario(t *testing.T) {
	uc, _ := newTestUseCase(t)
	_, err := uc.BulkAssign(context.Background(), bulkRequest())
	require.NoError(t, err)

	out, err := uc.List(context.Background(), repository.AssignmentFilter{UserID: "u2", Limit: 20})
	require.NoError(t, err)
	assert.Len(t, out.Items, 4)
	for _, it := range out.Items {
		assert.Equal(t, "u2", it.UserID)
	}
}
