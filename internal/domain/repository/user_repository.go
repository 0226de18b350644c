package repository

import (
	"context"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByLogin busca por username o email.
	GetByLogin(ctx context.Context, login string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	UpdateRoles(ctx context.Context, id string, roles []string) error
	// UpdateLockout persiste contador de intentos fallidos y fin de bloqueo.
	UpdateLockout(ctx context.Context, user *entity.User) error
}
