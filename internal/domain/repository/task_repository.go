package repository

import (
	"context"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

// TaskRepository persistencia de definiciones de tarea.
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	GetByName(ctx context.Context, name string) (*entity.Task, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Task, error)
	Update(ctx context.Context, t *entity.Task) error
	Delete(ctx context.Context, id string) error
}
