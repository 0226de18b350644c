package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo Admin): alta, roles y desbloqueo.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create hashea el password con bcrypt y persiste el usuario. Sin roles recibe User.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Username == "" || in.Email == "" || len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: username, email y password (mínimo 8) son requeridos", domain.ErrInvalidInput)
	}
	roles, err := normalizeRoles(in.Roles)
	if err != nil {
		return nil, err
	}
	for _, login := range []string{in.Username, in.Email} {
		existing, err := uc.repo.GetByLogin(ctx, login)
		if err != nil {
			return nil, fmt.Errorf("verificar usuario: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: el usuario o email ya está registrado", domain.ErrDuplicate)
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Roles:        roles,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("crear usuario: %w", err)
	}
	return ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List lista usuarios paginados.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *ToUserResponse(u))
	}
	return out, nil
}

// SetRoles reemplaza los roles del usuario.
func (uc *UserUseCase) SetRoles(ctx context.Context, id string, roles []string) (*dto.UserResponse, error) {
	user, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	normalized, err := normalizeRoles(roles)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateRoles(ctx, id, normalized); err != nil {
		return nil, fmt.Errorf("actualizar roles: %w", err)
	}
	user.Roles = normalized
	return ToUserResponse(user), nil
}

// Unlock limpia el bloqueo por intentos fallidos.
func (uc *UserUseCase) Unlock(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	user.ResetLockout()
	if err := uc.repo.UpdateLockout(ctx, user); err != nil {
		return nil, fmt.Errorf("desbloquear usuario: %w", err)
	}
	return ToUserResponse(user), nil
}

func (uc *UserUseCase) load(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// normalizeRoles valida los roles y elimina repetidos. Vacío equivale a [User].
func normalizeRoles(roles []string) ([]string, error) {
	if len(roles) == 0 {
		return []string{domain.RoleUser}, nil
	}
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if !domain.ValidRole(r) {
			return nil, fmt.Errorf("%w: rol %q desconocido", domain.ErrInvalidInput, r)
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out, nil
}

// ToUserResponse proyecta el usuario sin el hash del password.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FullName:       u.FullName,
		Roles:          u.Roles,
		Active:         u.Active,
		FailedAttempts: u.FailedAttempts,
		LockoutEnd:     u.LockoutEnd,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
