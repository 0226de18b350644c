package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// Columna de products que referencia cada catálogo. tipos-material se referencia desde materials.
var catalogProductColumn = map[entity.CatalogKind]string{
	entity.CatalogColor:    "color_id",
	entity.CatalogSize:     "size_id",
	entity.CatalogCategory: "category_id",
	entity.CatalogFamily:   "family_id",
	entity.CatalogLine:     "line_id",
}

// CatalogRepo catálogos maestros sobre la tabla catalog_items.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// Create persiste el valor junto con su descripción normalizada.
func (r *CatalogRepo) Create(ctx context.Context, item *entity.CatalogItem) error {
	query := `
		INSERT INTO catalog_items (id, kind, description, description_normalized, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		item.ID, string(item.Kind), item.Description, entity.NormalizeDescription(item.Description),
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert catalog item: %w", err)
	}
	return nil
}

// GetByID obtiene un valor del catálogo indicado.
func (r *CatalogRepo) GetByID(ctx context.Context, kind entity.CatalogKind, id string) (*entity.CatalogItem, error) {
	return r.getOne(ctx, `
		SELECT id, kind, description, created_at, updated_at
		FROM catalog_items WHERE kind = $1 AND id = $2`, string(kind), id)
}

// FindByNormalized busca por la clave de unicidad.
func (r *CatalogRepo) FindByNormalized(ctx context.Context, kind entity.CatalogKind, normalized string) (*entity.CatalogItem, error) {
	return r.getOne(ctx, `
		SELECT id, kind, description, created_at, updated_at
		FROM catalog_items WHERE kind = $1 AND description_normalized = $2`, string(kind), normalized)
}

func (r *CatalogRepo) getOne(ctx context.Context, query string, args ...any) (*entity.CatalogItem, error) {
	it, err := scanCatalogItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog item: %w", err)
	}
	return it, nil
}

// List valores del catálogo ordenados por descripción.
func (r *CatalogRepo) List(ctx context.Context, kind entity.CatalogKind) ([]*entity.CatalogItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, kind, description, created_at, updated_at
		FROM catalog_items WHERE kind = $1 ORDER BY description`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CatalogItem
	for rows.Next() {
		it, err := scanCatalogItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update renombra el valor y recalcula la clave normalizada.
func (r *CatalogRepo) Update(ctx context.Context, item *entity.CatalogItem) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE catalog_items SET description = $3, description_normalized = $4, updated_at = $5
		WHERE kind = $1 AND id = $2`,
		string(item.Kind), item.ID, item.Description, entity.NormalizeDescription(item.Description), item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update catalog item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el valor. Si sigue referenciado la FK devuelve ErrInUse.
func (r *CatalogRepo) Delete(ctx context.Context, kind entity.CatalogKind, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM catalog_items WHERE kind = $1 AND id = $2`, string(kind), id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete catalog item: %w", err)
	}
	return nil
}

// IsReferenced indica si algún producto (o insumo, para tipos-material) usa el valor.
func (r *CatalogRepo) IsReferenced(ctx context.Context, kind entity.CatalogKind, id string) (bool, error) {
	var query string
	if kind == entity.CatalogMaterialType {
		query = `SELECT EXISTS (SELECT 1 FROM materials WHERE material_type_id = $1)`
	} else {
		col, ok := catalogProductColumn[kind]
		if !ok {
			return false, fmt.Errorf("catálogo desconocido: %s", kind)
		}
		query = `SELECT EXISTS (SELECT 1 FROM products WHERE ` + col + ` = $1)`
	}
	var used bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&used); err != nil {
		return false, fmt.Errorf("catalog item referenced: %w", err)
	}
	return used, nil
}

func scanCatalogItem(row pgx.Row) (*entity.CatalogItem, error) {
	var it entity.CatalogItem
	var kind string
	if err := row.Scan(&it.ID, &kind, &it.Description, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	it.Kind = entity.CatalogKind(kind)
	return &it, nil
}
