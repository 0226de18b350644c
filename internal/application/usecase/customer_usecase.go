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

// CustomerUseCase casos de uso de clientes. Email y número de documento son únicos.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create registra un cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	in = normalizeCustomer(in)
	if err := validateCustomer(in); err != nil {
		return nil, err
	}
	if err := uc.ensureUnique(ctx, "", in); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Customer{
		ID:             uuid.New().String(),
		Name:           in.Name,
		DocumentType:   in.DocumentType,
		DocumentNumber: in.DocumentNumber,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("crear cliente: %w", err)
	}
	return toCustomerResponse(c), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	return uc.lookup(ctx, func() (*entity.Customer, error) { return uc.repo.GetByID(ctx, id) })
}

// GetByEmail obtiene un cliente por email.
func (uc *CustomerUseCase) GetByEmail(ctx context.Context, email string) (*dto.CustomerResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return uc.lookup(ctx, func() (*entity.Customer, error) { return uc.repo.GetByEmail(ctx, email) })
}

// GetByDocument obtiene un cliente por número de documento.
func (uc *CustomerUseCase) GetByDocument(ctx context.Context, document string) (*dto.CustomerResponse, error) {
	document = strings.TrimSpace(document)
	return uc.lookup(ctx, func() (*entity.Customer, error) { return uc.repo.GetByDocument(ctx, document) })
}

// List lista clientes; search filtra por nombre, documento o email.
func (uc *CustomerUseCase) List(ctx context.Context, search string, limit, offset int) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx, strings.TrimSpace(search), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// Update actualiza los datos del cliente manteniendo la unicidad.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	in = normalizeCustomer(in)
	if err := validateCustomer(in); err != nil {
		return nil, err
	}
	if err := uc.ensureUnique(ctx, id, in); err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.DocumentType = in.DocumentType
	c.DocumentNumber = in.DocumentNumber
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("actualizar cliente: %w", err)
	}
	return toCustomerResponse(c), nil
}

// Delete elimina el cliente si no tiene pedidos.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	has, err := uc.repo.HasOrders(ctx, id)
	if err != nil {
		return fmt.Errorf("verificar pedidos del cliente: %w", err)
	}
	if has {
		return fmt.Errorf("%w: el cliente tiene pedidos registrados", domain.ErrInUse)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar cliente: %w", err)
	}
	return nil
}

func (uc *CustomerUseCase) lookup(_ context.Context, get func() (*entity.Customer, error)) (*dto.CustomerResponse, error) {
	c, err := get()
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

func (uc *CustomerUseCase) load(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// ensureUnique rechaza email o documento ya usados por otro cliente distinto de selfID.
func (uc *CustomerUseCase) ensureUnique(ctx context.Context, selfID string, in dto.CreateCustomerRequest) error {
	byEmail, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return fmt.Errorf("verificar email: %w", err)
	}
	if byEmail != nil && byEmail.ID != selfID {
		return fmt.Errorf("%w: ya existe un cliente con el email %s", domain.ErrDuplicate, in.Email)
	}
	byDoc, err := uc.repo.GetByDocument(ctx, in.DocumentNumber)
	if err != nil {
		return fmt.Errorf("verificar documento: %w", err)
	}
	if byDoc != nil && byDoc.ID != selfID {
		return fmt.Errorf("%w: ya existe un cliente con el documento %s", domain.ErrDuplicate, in.DocumentNumber)
	}
	return nil
}

var documentTypes = map[string]struct{}{"CC": {}, "NIT": {}, "CE": {}, "PAS": {}}

func normalizeCustomer(in dto.CreateCustomerRequest) dto.CreateCustomerRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.DocumentType = strings.ToUpper(strings.TrimSpace(in.DocumentType))
	in.DocumentNumber = strings.TrimSpace(in.DocumentNumber)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	return in
}

func validateCustomer(in dto.CreateCustomerRequest) error {
	if in.Name == "" || in.DocumentNumber == "" || in.Email == "" {
		return fmt.Errorf("%w: nombre, documento y email son requeridos", domain.ErrInvalidInput)
	}
	if _, ok := documentTypes[in.DocumentType]; !ok {
		return fmt.Errorf("%w: tipo de documento %q no soportado", domain.ErrInvalidInput, in.DocumentType)
	}
	if !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	}
	return nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		DocumentType:   c.DocumentType,
		DocumentNumber: c.DocumentNumber,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
