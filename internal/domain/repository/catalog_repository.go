package repository

import (
	"context"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

// CatalogRepository persistencia de los catálogos maestros (colores, tallas, ...).
type CatalogRepository interface {
	Create(ctx context.Context, item *entity.CatalogItem) error
	GetByID(ctx context.Context, kind entity.CatalogKind, id string) (*entity.CatalogItem, error)
	// FindByNormalized busca por descripción normalizada (sin tildes, minúsculas).
	FindByNormalized(ctx context.Context, kind entity.CatalogKind, normalized string) (*entity.CatalogItem, error)
	List(ctx context.Context, kind entity.CatalogKind) ([]*entity.CatalogItem, error)
	Update(ctx context.Context, item *entity.CatalogItem) error
	Delete(ctx context.Context, kind entity.CatalogKind, id string) error
	IsReferenced(ctx context.Context, kind entity.CatalogKind, id string) (bool, error)
}
