package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

// TaskUseCase CRUD de definiciones de tarea.
type TaskUseCase struct {
	repo           repository.TaskRepository
	assignmentRepo repository.TaskAssignmentRepository
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository, assignmentRepo repository.TaskAssignmentRepository) *TaskUseCase {
	return &TaskUseCase{repo: repo, assignmentRepo: assignmentRepo}
}

// Create registra una tarea. El nombre es único.
func (uc *TaskUseCase) Create(ctx context.Context, in dto.TaskRequest) (*dto.TaskResponse, error) {
	if err := uc.validate(ctx, "", &in); err != nil {
		return nil, err
	}
	now := time.Now()
	t := &entity.Task{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Comments:    in.Comments,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("crear tarea: %w", err)
	}
	return toTaskResponse(t), nil
}

// GetByID obtiene una tarea.
func (uc *TaskUseCase) GetByID(ctx context.Context, id string) (*dto.TaskResponse, error) {
	t, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTaskResponse(t), nil
}

// List lista tareas.
func (uc *TaskUseCase) List(ctx context.Context, limit, offset int) ([]dto.TaskResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar tareas: %w", err)
	}
	out := make([]dto.TaskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTaskResponse(t))
	}
	return out, nil
}

// Update actualiza una tarea.
func (uc *TaskUseCase) Update(ctx context.Context, id string, in dto.TaskRequest) (*dto.TaskResponse, error) {
	t, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.validate(ctx, id, &in); err != nil {
		return nil, err
	}
	t.Name = in.Name
	t.Description = in.Description
	t.Comments = in.Comments
	t.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("actualizar tarea: %w", err)
	}
	return toTaskResponse(t), nil
}

// Delete elimina la tarea si no tiene asignaciones pendientes, en progreso o pausadas.
func (uc *TaskUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	active, err := uc.assignmentRepo.CountActiveByTask(ctx, id)
	if err != nil {
		return fmt.Errorf("contar asignaciones activas: %w", err)
	}
	if active > 0 {
		return fmt.Errorf("%w: la tarea tiene %d asignaciones activas", domain.ErrInUse, active)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar tarea: %w", err)
	}
	return nil
}

func (uc *TaskUseCase) load(ctx context.Context, id string) (*entity.Task, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener tarea: %w", err)
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (uc *TaskUseCase) validate(ctx context.Context, selfID string, in *dto.TaskRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return fmt.Errorf("verificar nombre: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("%w: ya existe una tarea llamada %s", domain.ErrDuplicate, in.Name)
	}
	return nil
}

func toTaskResponse(t *entity.Task) *dto.TaskResponse {
	return &dto.TaskResponse{ID: t.ID, Name: t.Name, Description: t.Description, Comments: t.Comments}
}
