package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productSelect = `
	SELECT p.id, p.code, p.name, p.description, p.base_price,
	       p.color_id, p.size_id, p.category_id, p.family_id, p.line_id,
	       ARRAY(SELECT pm.material_id::text FROM product_materials pm WHERE pm.product_id = p.id ORDER BY pm.material_id),
	       p.created_at, p.updated_at
	FROM products p`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste el producto y su lista de insumos en una sola sentencia.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		WITH ins AS (
			INSERT INTO products (id, code, name, description, base_price, color_id, size_id, category_id, family_id, line_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id
		)
		INSERT INTO product_materials (product_id, material_id)
		SELECT ins.id, m::uuid FROM ins, unnest($13::text[]) AS m`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Name, p.Description, p.BasePrice,
		p.ColorID, p.SizeID, p.CategoryID, p.FamilyID, p.LineID,
		p.CreatedAt, p.UpdatedAt, nonNilIDs(p.MaterialIDs),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referencia inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, productSelect+` WHERE p.id = $1`, id)
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.getOne(ctx, productSelect+` WHERE p.code = $1`, code)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza el producto y sincroniza la lista de insumos: quita los que ya
// no están y agrega los nuevos.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		WITH upd AS (
			UPDATE products SET code = $2, name = $3, description = $4, base_price = $5,
				color_id = $6, size_id = $7, category_id = $8, family_id = $9, line_id = $10, updated_at = $11
			WHERE id = $1
			RETURNING id
		), del AS (
			DELETE FROM product_materials
			WHERE product_id = $1 AND NOT (material_id::text = ANY($12::text[]))
		)
		INSERT INTO product_materials (product_id, material_id)
		SELECT upd.id, m::uuid FROM upd, unnest($12::text[]) AS m
		ON CONFLICT DO NOTHING`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Name, p.Description, p.BasePrice,
		p.ColorID, p.SizeID, p.CategoryID, p.FamilyID, p.LineID,
		p.UpdatedAt, nonNilIDs(p.MaterialIDs),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: referencia inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos por código con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, productSelect+` ORDER BY p.code LIMIT $1 OFFSET $2`, limitArg(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID; product_materials cae en cascada.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// IsReferenced indica si el producto figura en líneas de pedido o asignaciones.
func (r *ProductRepo) IsReferenced(ctx context.Context, id string) (bool, error) {
	var used bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM order_items WHERE product_id = $1)
		    OR EXISTS (SELECT 1 FROM task_assignments WHERE product_id = $1)`, id).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("product referenced: %w", err)
	}
	return used, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Description, &p.BasePrice,
		&p.ColorID, &p.SizeID, &p.CategoryID, &p.FamilyID, &p.LineID,
		&p.MaterialIDs, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
