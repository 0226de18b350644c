package repository

import (
	"context"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

// AssignmentFilter criterios de listado de asignaciones. Campos vacíos no filtran.
type AssignmentFilter struct {
	UserID    string
	ProductID string
	TaskID    string
	Status    entity.AssignmentStatus // 0 = todos
	Limit     int
	Offset    int
}

// TaskAssignmentRepository persistencia de asignaciones de tareas.
type TaskAssignmentRepository interface {
	Create(ctx context.Context, a *entity.TaskAssignment) error
	GetByID(ctx context.Context, id string) (*entity.TaskAssignment, error)
	List(ctx context.Context, f AssignmentFilter) ([]*entity.TaskAssignment, error)
	UpdateStatus(ctx context.Context, a *entity.TaskAssignment) error
	Delete(ctx context.Context, id string) error
	// ExistsActive indica si hay una asignación no terminal para la terna.
	ExistsActive(ctx context.Context, key entity.AssignmentKey) (bool, error)
	// CountActiveByTask asignaciones no terminales de una definición de tarea.
	CountActiveByTask(ctx context.Context, taskID string) (int, error)
	CountsByProduct(ctx context.Context, productIDs []string) (map[string]entity.AssignmentCounts, error)
}
