package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/application/usecase"
)

// UserHandler administración de usuarios (solo Admin).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create crea un usuario.
// POST /api/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusCreated, "usuario creado", out)
}

// List lista usuarios.
// GET /api/users
func (h *UserHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetRoles reemplaza los roles del usuario.
// PUT /api/users/:id/roles
func (h *UserHandler) SetRoles(c *fiber.Ctx) error {
	var in dto.UpdateRolesRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetRoles(c.Context(), c.Params("id"), in.Roles)
	if err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "roles actualizados", out)
}

// Unlock limpia el bloqueo por intentos fallidos.
// POST /api/users/:id/unlock
func (h *UserHandler) Unlock(c *fiber.Ctx) error {
	out, err := h.uc.Unlock(c.Context(), c.Params("id"))
	if err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "usuario desbloqueado", out)
}
