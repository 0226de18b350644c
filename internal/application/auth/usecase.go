package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/application/usecase"
	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
	"github.com/jhoicas/Confecciones-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// LockoutPolicy bloqueo de cuentas por intentos fallidos.
type LockoutPolicy struct {
	MaxFailedAttempts int
	Lockout           time.Duration
}

// AuthUseCase login con bloqueo por intentos fallidos y emisión de JWT.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	policy   LockoutPolicy
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, policy LockoutPolicy) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, policy: policy, now: time.Now}
}

// Login verifica username/email + password, genera JWT y retorna token + usuario.
//
// Una cuenta bloqueada se rechaza con ErrAccountLocked aunque el password sea correcto.
// Cada fallo incrementa el contador; al llegar al máximo la cuenta queda bloqueada
// durante policy.Lockout. Un login exitoso limpia contador y bloqueo.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByLogin(ctx, in.Login)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	now := uc.now()
	if user.IsLocked(now) {
		return nil, domain.ErrAccountLocked
	}
	if !user.Active {
		return nil, domain.ErrInactiveAccount
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		user.RegisterFailedLogin(now, uc.policy.MaxFailedAttempts, uc.policy.Lockout)
		if err := uc.userRepo.UpdateLockout(ctx, user); err != nil {
			return nil, fmt.Errorf("login: registrar intento fallido: %w", err)
		}
		if user.IsLocked(now) {
			return nil, domain.ErrAccountLocked
		}
		return nil, domain.ErrUnauthorized
	}
	if user.FailedAttempts > 0 || user.LockoutEnd != nil {
		user.ResetLockout()
		if err := uc.userRepo.UpdateLockout(ctx, user); err != nil {
			return nil, fmt.Errorf("login: limpiar bloqueo: %w", err)
		}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      *usecase.ToUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, actor domain.Actor) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("me: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return usecase.ToUserResponse(user), nil
}
