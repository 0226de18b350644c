package repository

import (
	"context"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

// MaterialRepository persistencia de insumos.
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetByName(ctx context.Context, name string) (*entity.Material, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Material, error)
	Update(ctx context.Context, m *entity.Material) error
	Delete(ctx context.Context, id string) error
	IsUsedByProduct(ctx context.Context, id string) (bool, error)
}
