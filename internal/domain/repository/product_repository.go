package repository

import (
	"context"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

// ProductRepository persistencia de productos (prendas) y su lista de materiales.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	IsReferenced(ctx context.Context, id string) (bool, error)
}
