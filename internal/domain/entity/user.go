package entity

import "time"

// User usuario del sistema (operarios, jefes de producción, administradores).
type User struct {
	ID             string
	Username       string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	FullName       string
	Roles          []string // Admin, Manager, User
	Active         bool
	FailedAttempts int
	LockoutEnd     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsLocked indica si la cuenta sigue bloqueada en now.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockoutEnd != nil && now.Before(*u.LockoutEnd)
}

// RegisterFailedLogin incrementa el contador y bloquea la cuenta al alcanzar maxAttempts.
func (u *User) RegisterFailedLogin(now time.Time, maxAttempts int, lockout time.Duration) {
	u.FailedAttempts++
	if u.FailedAttempts >= maxAttempts {
		end := now.Add(lockout)
		u.LockoutEnd = &end
		u.FailedAttempts = 0
	}
}

// ResetLockout limpia el contador y el bloqueo.
func (u *User) ResetLockout() {
	u.FailedAttempts = 0
	u.LockoutEnd = nil
}
