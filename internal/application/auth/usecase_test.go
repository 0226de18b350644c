package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Confecciones-api/internal/application/apptest"
	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func newTestUseCase(t *testing.T) (*AuthUseCase, *apptest.Store, *time.Time) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correcta123"), bcrypt.MinCost)
	require.NoError(t, err)
	s := apptest.NewStore()
	s.Users["u1"] = entity.User{
		ID: "u1", Username: "ana", Email: "ana@taller.co", PasswordHash: string(hash),
		Roles: []string{domain.RoleManager}, Active: true,
	}
	clock := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	uc := NewAuthUseCase(s.UserRepo(),
		JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "confecciones-api"},
		LockoutPolicy{MaxFailedAttempts: 3, Lockout: 15 * time.Minute})
	uc.now = func() time.Time { return clock }
	return uc, s, &clock
}

func TestLogin_PorUsernameOEmail(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	for _, login := range []string{"ana", "ana@taller.co"} {
		out, err := uc.Login(context.Background(), dto.LoginRequest{Login: login, Password: "correcta123"})
		require.NoError(t, err, login)
		assert.Equal(t, 3600, out.ExpiresIn)

		id, err := jwt.Parse(testSecret, out.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", id.UserID)
		assert.Equal(t, "ana", id.Username)
		assert.Equal(t, []string{domain.RoleManager}, id.Roles)
	}
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Login: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_BloqueoTrasIntentosFallidos(t *testing.T) {
	uc, s, clock := newTestUseCase(t)
	ctx := context.Background()
	bad := dto.LoginRequest{Login: "ana", Password: "incorrecta"}

	for i := 0; i < 2; i++ {
		_, err := uc.Login(ctx, bad)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
	assert.Equal(t, 2, s.Users["u1"].FailedAttempts)

	_, err := uc.Login(ctx, bad)
	assert.ErrorIs(t, err, domain.ErrAccountLocked)
	require.NotNil(t, s.Users["u1"].LockoutEnd)

	// Bloqueada: ni el password correcto entra.
	_, err = uc.Login(ctx, dto.LoginRequest{Login: "ana", Password: "correcta123"})
	assert.ErrorIs(t, err, domain.ErrAccountLocked)

	*clock = clock.Add(16 * time.Minute)
	_, err = uc.Login(ctx, dto.LoginRequest{Login: "ana", Password: "correcta123"})
	require.NoError(t, err)
	assert.Zero(t, s.Users["u1"].FailedAttempts)
	assert.Nil(t, s.Users["u1"].LockoutEnd)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	uc, s, _ := newTestUseCase(t)
	u := s.Users["u1"]
	u.Active = false
	s.Users["u1"] = u

	_, err := uc.Login(context.Background(), dto.LoginRequest{Login: "ana", Password: "correcta123"})
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}

func TestMe(t *testing.T) {
	uc, _, _ := newTestUseCase(t)
	out, err := uc.Me(context.Background(), domain.Actor{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "ana@taller.co", out.Email)

	_, err = uc.Me(context.Background(), domain.Actor{UserID: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
