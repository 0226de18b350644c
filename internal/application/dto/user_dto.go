package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=60"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	FullName string   `json:"full_name" validate:"required,max=200"`
	Roles    []string `json:"roles" validate:"dive,oneof=Admin Manager User"`
}

// UpdateRolesRequest reemplaza los roles del usuario.
type UpdateRolesRequest struct {
	Roles []string `json:"roles"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name"`
	Roles          []string   `json:"roles"`
	Active         bool       `json:"active"`
	FailedAttempts int        `json:"failed_attempts"`
	LockoutEnd     *time.Time `json:"lockout_end,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// LoginRequest entrada para login: username o email más password.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // segundos
	User      UserResponse `json:"user"`
}
