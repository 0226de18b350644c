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

// MaterialUseCase CRUD de insumos. El nombre es único y el tipo debe existir en el
// catálogo de tipos de material.
type MaterialUseCase struct {
	repo        repository.MaterialRepository
	catalogRepo repository.CatalogRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository, catalogRepo repository.CatalogRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, catalogRepo: catalogRepo}
}

// Create registra un insumo.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.MaterialRequest) (*dto.MaterialResponse, error) {
	typeName, err := uc.validate(ctx, "", &in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	m := &entity.Material{
		ID:               uuid.New().String(),
		Name:             in.Name,
		MaterialTypeID:   in.MaterialTypeID,
		MaterialTypeName: typeName,
		Unit:             in.Unit,
		UnitCost:         in.UnitCost,
		Stock:            in.Stock,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("crear insumo: %w", err)
	}
	return toMaterialResponse(m), nil
}

// GetByID obtiene un insumo.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// List lista insumos.
func (uc *MaterialUseCase) List(ctx context.Context, limit, offset int) ([]dto.MaterialResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar insumos: %w", err)
	}
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMaterialResponse(m))
	}
	return out, nil
}

// Update actualiza un insumo.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, in dto.MaterialRequest) (*dto.MaterialResponse, error) {
	m, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	typeName, err := uc.validate(ctx, id, &in)
	if err != nil {
		return nil, err
	}
	m.Name = in.Name
	m.MaterialTypeID = in.MaterialTypeID
	m.MaterialTypeName = typeName
	m.Unit = in.Unit
	m.UnitCost = in.UnitCost
	m.Stock = in.Stock
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("actualizar insumo: %w", err)
	}
	return toMaterialResponse(m), nil
}

// Delete elimina un insumo que ningún producto use.
func (uc *MaterialUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	used, err := uc.repo.IsUsedByProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("verificar uso del insumo: %w", err)
	}
	if used {
		return fmt.Errorf("%w: el insumo está asociado a productos", domain.ErrInUse)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar insumo: %w", err)
	}
	return nil
}

func (uc *MaterialUseCase) load(ctx context.Context, id string) (*entity.Material, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener insumo: %w", err)
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// validate devuelve la descripción del tipo de material.
func (uc *MaterialUseCase) validate(ctx context.Context, selfID string, in *dto.MaterialRequest) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Name == "" || in.Unit == "" {
		return "", fmt.Errorf("%w: nombre y unidad son requeridos", domain.ErrInvalidInput)
	}
	if in.UnitCost.IsNegative() || in.Stock.IsNegative() {
		return "", fmt.Errorf("%w: costo y existencias no pueden ser negativos", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return "", fmt.Errorf("verificar nombre: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return "", fmt.Errorf("%w: ya existe un insumo llamado %s", domain.ErrDuplicate, in.Name)
	}
	mt, err := uc.catalogRepo.GetByID(ctx, entity.CatalogMaterialType, in.MaterialTypeID)
	if err != nil {
		return "", fmt.Errorf("obtener tipo de material: %w", err)
	}
	if mt == nil {
		return "", fmt.Errorf("%w: el tipo de material %s no existe", domain.ErrInvalidInput, in.MaterialTypeID)
	}
	return mt.Description, nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:               m.ID,
		Name:             m.Name,
		MaterialTypeID:   m.MaterialTypeID,
		MaterialTypeName: m.MaterialTypeName,
		Unit:             m.Unit,
		UnitCost:         m.UnitCost,
		Stock:            m.Stock,
	}
}
