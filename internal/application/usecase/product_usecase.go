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

// ProductUseCase casos de uso CRUD para productos (prendas) con sus referencias a
// catálogos y su lista de insumos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	catalogRepo  repository.CatalogRepository
	materialRepo repository.MaterialRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, catalogRepo repository.CatalogRepository, materialRepo repository.MaterialRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, catalogRepo: catalogRepo, materialRepo: materialRepo}
}

// Create crea un nuevo producto. El código es único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(ctx, "", &in); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		CreatedAt: now,
	}
	applyProduct(product, in, now)
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update reemplaza los datos del producto y su lista de insumos.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.validate(ctx, id, &in); err != nil {
		return nil, err
	}
	applyProduct(product, in, time.Now())
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("actualizar producto: %w", err)
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto que no figure en pedidos ni asignaciones.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	used, err := uc.repo.IsReferenced(ctx, id)
	if err != nil {
		return fmt.Errorf("verificar referencias del producto: %w", err)
	}
	if used {
		return fmt.Errorf("%w: el producto figura en pedidos o asignaciones", domain.ErrInUse)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar producto: %w", err)
	}
	return nil
}

func (uc *ProductUseCase) load(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (uc *ProductUseCase) validate(ctx context.Context, selfID string, in *dto.ProductRequest) error {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" || in.Name == "" {
		return fmt.Errorf("%w: código y nombre son requeridos", domain.ErrInvalidInput)
	}
	if in.BasePrice.IsNegative() {
		return fmt.Errorf("%w: el precio base no puede ser negativo", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return fmt.Errorf("verificar código: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("%w: el código %s ya existe", domain.ErrDuplicate, in.Code)
	}
	refs := []struct {
		kind entity.CatalogKind
		id   *string
	}{
		{entity.CatalogColor, in.ColorID},
		{entity.CatalogSize, in.SizeID},
		{entity.CatalogCategory, in.CategoryID},
		{entity.CatalogFamily, in.FamilyID},
		{entity.CatalogLine, in.LineID},
	}
	for _, ref := range refs {
		if ref.id == nil || *ref.id == "" {
			continue
		}
		item, err := uc.catalogRepo.GetByID(ctx, ref.kind, *ref.id)
		if err != nil {
			return fmt.Errorf("obtener %s: %w", ref.kind, err)
		}
		if item == nil {
			return fmt.Errorf("%w: %s %s no existe", domain.ErrInvalidInput, ref.kind, *ref.id)
		}
	}
	in.MaterialIDs = distinctIDs(in.MaterialIDs)
	for _, mid := range in.MaterialIDs {
		m, err := uc.materialRepo.GetByID(ctx, mid)
		if err != nil {
			return fmt.Errorf("obtener insumo: %w", err)
		}
		if m == nil {
			return fmt.Errorf("%w: el insumo %s no existe", domain.ErrInvalidInput, mid)
		}
	}
	return nil
}

func applyProduct(p *entity.Product, in dto.ProductRequest, now time.Time) {
	p.Code = in.Code
	p.Name = in.Name
	p.Description = in.Description
	p.BasePrice = in.BasePrice
	p.ColorID = emptyToNil(in.ColorID)
	p.SizeID = emptyToNil(in.SizeID)
	p.CategoryID = emptyToNil(in.CategoryID)
	p.FamilyID = emptyToNil(in.FamilyID)
	p.LineID = emptyToNil(in.LineID)
	p.MaterialIDs = in.MaterialIDs
	p.UpdatedAt = now
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func distinctIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	materials := p.MaterialIDs
	if materials == nil {
		materials = []string{}
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		ColorID:     p.ColorID,
		SizeID:      p.SizeID,
		CategoryID:  p.CategoryID,
		FamilyID:    p.FamilyID,
		LineID:      p.LineID,
		MaterialIDs: materials,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
