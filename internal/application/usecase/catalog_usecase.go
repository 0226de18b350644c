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

// CatalogUseCase CRUD de los catálogos maestros. La descripción es única dentro de
// cada catálogo sin distinguir mayúsculas ni tildes.
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// Create agrega un valor al catálogo.
func (uc *CatalogUseCase) Create(ctx context.Context, kind entity.CatalogKind, in dto.CatalogRequest) (*dto.CatalogResponse, error) {
	desc, err := uc.validate(ctx, kind, "", in.Description)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.CatalogItem{
		ID:          uuid.New().String(),
		Kind:        kind,
		Description: desc,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("crear %s: %w", kind, err)
	}
	return toCatalogResponse(item), nil
}

// List lista los valores de un catálogo.
func (uc *CatalogUseCase) List(ctx context.Context, kind entity.CatalogKind) ([]dto.CatalogResponse, error) {
	if !kind.IsValid() {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", kind, err)
	}
	out := make([]dto.CatalogResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toCatalogResponse(it))
	}
	return out, nil
}

// Update renombra un valor.
func (uc *CatalogUseCase) Update(ctx context.Context, kind entity.CatalogKind, id string, in dto.CatalogRequest) (*dto.CatalogResponse, error) {
	item, err := uc.load(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	desc, err := uc.validate(ctx, kind, id, in.Description)
	if err != nil {
		return nil, err
	}
	item.Description = desc
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("actualizar %s: %w", kind, err)
	}
	return toCatalogResponse(item), nil
}

// Delete elimina un valor que no esté referenciado por productos o insumos.
func (uc *CatalogUseCase) Delete(ctx context.Context, kind entity.CatalogKind, id string) error {
	if _, err := uc.load(ctx, kind, id); err != nil {
		return err
	}
	used, err := uc.repo.IsReferenced(ctx, kind, id)
	if err != nil {
		return fmt.Errorf("verificar referencias: %w", err)
	}
	if used {
		return fmt.Errorf("%w: el valor está en uso", domain.ErrInUse)
	}
	if err := uc.repo.Delete(ctx, kind, id); err != nil {
		return fmt.Errorf("eliminar %s: %w", kind, err)
	}
	return nil
}

func (uc *CatalogUseCase) load(ctx context.Context, kind entity.CatalogKind, id string) (*entity.CatalogItem, error) {
	if !kind.IsValid() {
		return nil, domain.ErrNotFound
	}
	item, err := uc.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("obtener %s: %w", kind, err)
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// validate limpia la descripción y verifica que no choque con otro valor del catálogo.
func (uc *CatalogUseCase) validate(ctx context.Context, kind entity.CatalogKind, selfID, description string) (string, error) {
	if !kind.IsValid() {
		return "", domain.ErrNotFound
	}
	desc := strings.Join(strings.Fields(description), " ")
	if desc == "" {
		return "", fmt.Errorf("%w: la descripción es requerida", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.FindByNormalized(ctx, kind, entity.NormalizeDescription(desc))
	if err != nil {
		return "", fmt.Errorf("verificar descripción: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return "", fmt.Errorf("%w: %q ya existe en %s", domain.ErrDuplicate, existing.Description, kind)
	}
	return desc, nil
}

func toCatalogResponse(it *entity.CatalogItem) *dto.CatalogResponse {
	return &dto.CatalogResponse{ID: it.ID, Kind: string(it.Kind), Description: it.Description}
}
