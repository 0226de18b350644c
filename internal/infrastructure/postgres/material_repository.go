package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialSelect = `
	SELECT m.id, m.name, m.material_type_id, COALESCE(ci.description, ''), m.unit, m.unit_cost, m.stock, m.created_at, m.updated_at
	FROM materials m
	LEFT JOIN catalog_items ci ON ci.id = m.material_type_id`

// MaterialRepo insumos sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un insumo.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (id, name, material_type_id, unit, unit_cost, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.MaterialTypeID, m.Unit, m.UnitCost, m.Stock, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo con la descripción de su tipo.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return r.getOne(ctx, materialSelect+` WHERE m.id = $1`, id)
}

// GetByName busca por nombre sin distinguir mayúsculas.
func (r *MaterialRepo) GetByName(ctx context.Context, name string) (*entity.Material, error) {
	return r.getOne(ctx, materialSelect+` WHERE lower(m.name) = lower($1)`, name)
}

func (r *MaterialRepo) getOne(ctx context.Context, query string, arg any) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// List insumos por nombre.
func (r *MaterialRepo) List(ctx context.Context, limit, offset int) ([]*entity.Material, error) {
	rows, err := r.q.Query(ctx, materialSelect+` ORDER BY m.name LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update actualiza un insumo.
func (r *MaterialRepo) Update(ctx context.Context, m *entity.Material) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE materials SET name = $2, material_type_id = $3, unit = $4, unit_cost = $5, stock = $6, updated_at = $7
		WHERE id = $1`,
		m.ID, m.Name, m.MaterialTypeID, m.Unit, m.UnitCost, m.Stock, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un insumo.
func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}

// IsUsedByProduct indica si algún producto lista el insumo.
func (r *MaterialRepo) IsUsedByProduct(ctx context.Context, id string) (bool, error) {
	var used bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM product_materials WHERE material_id = $1)`, id).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("material used by product: %w", err)
	}
	return used, nil
}

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	if err := row.Scan(&m.ID, &m.Name, &m.MaterialTypeID, &m.MaterialTypeName, &m.Unit, &m.UnitCost, &m.Stock, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
