// Package assignments contiene los casos de uso de asignación de tareas de producción:
// alta individual y masiva, cambios de estado y consultas.
package assignments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

// AssignmentUseCase orquesta las asignaciones (usuario, producto, tarea).
type AssignmentUseCase struct {
	repo        repository.TaskAssignmentRepository
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	taskRepo    repository.TaskRepository
	tx          TxRunner
	now         func() time.Time
}

// NewAssignmentUseCase construye el caso de uso.
func NewAssignmentUseCase(
	repo repository.TaskAssignmentRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	taskRepo repository.TaskRepository,
	tx TxRunner,
) *AssignmentUseCase {
	return &AssignmentUseCase{
		repo:        repo,
		userRepo:    userRepo,
		productRepo: productRepo,
		taskRepo:    taskRepo,
		tx:          tx,
		now:         time.Now,
	}
}

// Create asigna una tarea. Se rechaza con ErrDuplicate si la terna ya tiene una
// asignación no terminal.
func (uc *AssignmentUseCase) Create(ctx context.Context, in dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if err := uc.ensureExist(ctx, []string{in.UserID}, []string{in.ProductID}, []string{in.TaskID}); err != nil {
		return nil, err
	}
	a, err := uc.newAssignment(in.UserID, in.ProductID, in.TaskID, in.StartAt, in.EndAt)
	if err != nil {
		return nil, err
	}
	exists, err := uc.repo.ExistsActive(ctx, a.Key())
	if err != nil {
		return nil, fmt.Errorf("verificar asignación activa: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: ya existe una asignación activa para el usuario, producto y tarea", domain.ErrDuplicate)
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("crear asignación: %w", err)
	}
	return ToAssignmentResponse(a, uc.now()), nil
}

// BulkAssign crea el producto cartesiano usuarios × productos × tareas en una sola
// transacción. Las ternas con asignación activa, o repetidas en la misma petición,
// se omiten. Cualquier error deshace todas las altas.
func (uc *AssignmentUseCase) BulkAssign(ctx context.Context, in dto.BulkAssignmentRequest) (*dto.BulkAssignmentResponse, error) {
	if len(in.UserIDs) == 0 || len(in.ProductIDs) == 0 || len(in.TaskIDs) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un usuario, un producto y una tarea", domain.ErrInvalidInput)
	}
	if err := uc.ensureExist(ctx, in.UserIDs, in.ProductIDs, in.TaskIDs); err != nil {
		return nil, err
	}
	if in.EndAt != nil && in.StartAt != nil && in.EndAt.Before(*in.StartAt) {
		return nil, fmt.Errorf("%w: la fecha de fin es anterior al inicio", domain.ErrInvalidInput)
	}

	var result dto.BulkAssignmentResponse
	err := uc.tx.RunAssignments(ctx, func(repo repository.TaskAssignmentRepository) error {
		result = dto.BulkAssignmentResponse{CreatedIDs: []string{}}
		seen := make(map[entity.AssignmentKey]struct{})
		for _, userID := range in.UserIDs {
			for _, productID := range in.ProductIDs {
				for _, taskID := range in.TaskIDs {
					key := entity.AssignmentKey{UserID: userID, ProductID: productID, TaskID: taskID}
					if _, dup := seen[key]; dup {
						result.Skipped++
						continue
					}
					seen[key] = struct{}{}
					exists, err := repo.ExistsActive(ctx, key)
					if err != nil {
						return fmt.Errorf("verificar asignación activa: %w", err)
					}
					if exists {
						result.Skipped++
						continue
					}
					a, err := uc.newAssignment(userID, productID, taskID, in.StartAt, in.EndAt)
					if err != nil {
						return err
					}
					if err := repo.Create(ctx, a); err != nil {
						return fmt.Errorf("crear asignación: %w", err)
					}
					result.Created++
					result.CreatedIDs = append(result.CreatedIDs, a.ID)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("asignación masiva: %w", err)
	}
	return &result, nil
}

// ChangeStatus cambia el estado de la asignación. Solo el usuario asignado o un
// Manager/Admin pueden hacerlo; la autorización se verifica antes que las reglas.
func (uc *AssignmentUseCase) ChangeStatus(ctx context.Context, actor domain.Actor, id string, target entity.AssignmentStatus) (*dto.AssignmentResponse, error) {
	a, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != actor.UserID && !actor.IsSupervisor() {
		return nil, domain.ErrForbidden
	}
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: estado %d desconocido", domain.ErrInvalidInput, target)
	}
	from := a.Status
	now := uc.now()
	if !a.ApplyStatus(target, now) {
		return nil, fmt.Errorf("%w: de %s a %s", domain.ErrInvalidTransition, from.Label(), target.Label())
	}
	if err := uc.repo.UpdateStatus(ctx, a); err != nil {
		return nil, fmt.Errorf("actualizar asignación: %w", err)
	}
	return ToAssignmentResponse(a, now), nil
}

// Start → En progreso.
func (uc *AssignmentUseCase) Start(ctx context.Context, actor domain.Actor, id string) (*dto.AssignmentResponse, error) {
	return uc.ChangeStatus(ctx, actor, id, entity.AssignmentInProgress)
}

// Complete → Completada (fija la fecha de fin si falta).
func (uc *AssignmentUseCase) Complete(ctx context.Context, actor domain.Actor, id string) (*dto.AssignmentResponse, error) {
	return uc.ChangeStatus(ctx, actor, id, entity.AssignmentCompleted)
}

// Pause → Pausada.
func (uc *AssignmentUseCase) Pause(ctx context.Context, actor domain.Actor, id string) (*dto.AssignmentResponse, error) {
	return uc.ChangeStatus(ctx, actor, id, entity.AssignmentPaused)
}

// Delete elimina la asignación mientras no esté Completada.
func (uc *AssignmentUseCase) Delete(ctx context.Context, id string) error {
	a, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if a.Status == entity.AssignmentCompleted {
		return fmt.Errorf("%w: una asignación completada no se puede eliminar", domain.ErrConflict)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar asignación: %w", err)
	}
	return nil
}

// GetByID obtiene una asignación.
func (uc *AssignmentUseCase) GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	a, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToAssignmentResponse(a, uc.now()), nil
}

// List lista asignaciones filtradas.
func (uc *AssignmentUseCase) List(ctx context.Context, f repository.AssignmentFilter) (*dto.AssignmentListResponse, error) {
	if f.Status != 0 && !f.Status.IsValid() {
		return nil, fmt.Errorf("%w: estado %d desconocido", domain.ErrInvalidInput, f.Status)
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listar asignaciones: %w", err)
	}
	now := uc.now()
	items := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *ToAssignmentResponse(a, now))
	}
	return &dto.AssignmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

func (uc *AssignmentUseCase) load(ctx context.Context, id string) (*entity.TaskAssignment, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener asignación: %w", err)
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (uc *AssignmentUseCase) newAssignment(userID, productID, taskID string, startAt, endAt *time.Time) (*entity.TaskAssignment, error) {
	start := uc.now()
	if startAt != nil {
		start = *startAt
	}
	if endAt != nil && endAt.Before(start) {
		return nil, fmt.Errorf("%w: la fecha de fin es anterior al inicio", domain.ErrInvalidInput)
	}
	return &entity.TaskAssignment{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		TaskID:    taskID,
		StartAt:   start,
		EndAt:     endAt,
		Status:    entity.AssignmentPending,
	}, nil
}

// ensureExist valida que cada usuario, producto y tarea referenciados exista.
func (uc *AssignmentUseCase) ensureExist(ctx context.Context, userIDs, productIDs, taskIDs []string) error {
	for _, id := range distinct(userIDs) {
		u, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener usuario: %w", err)
		}
		if u == nil {
			return fmt.Errorf("%w: el usuario %s no existe", domain.ErrInvalidInput, id)
		}
	}
	for _, id := range distinct(productIDs) {
		p, err := uc.productRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener producto: %w", err)
		}
		if p == nil {
			return fmt.Errorf("%w: el producto %s no existe", domain.ErrInvalidInput, id)
		}
	}
	for _, id := range distinct(taskIDs) {
		t, err := uc.taskRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("obtener tarea: %w", err)
		}
		if t == nil {
			return fmt.Errorf("%w: la tarea %s no existe", domain.ErrInvalidInput, id)
		}
	}
	return nil
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ToAssignmentResponse proyecta la asignación con sus derivados calculados en now.
func ToAssignmentResponse(a *entity.TaskAssignment, now time.Time) *dto.AssignmentResponse {
	if a == nil {
		return nil
	}
	out := &dto.AssignmentResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		UserName:    a.UserName,
		ProductID:   a.ProductID,
		ProductName: a.ProductName,
		TaskID:      a.TaskID,
		TaskName:    a.TaskName,
		StartAt:     a.StartAt,
		EndAt:       a.EndAt,
		Status:      int(a.Status),
		StatusLabel: a.Status.Label(),
		IsOverdue:   a.IsOverdue(now),
	}
	if d := a.Duration(); d != nil {
		minutes := int64(d.Minutes())
		out.DurationMinutes = &minutes
	}
	return out
}
