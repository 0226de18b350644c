package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/application/usecase"
)

// MaterialHandler CRUD de insumos.
type MaterialHandler struct {
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.MaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusCreated, "insumo creado", out)
}

func (h *MaterialHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.MaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "insumo actualizado", out)
}

func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "insumo eliminado", nil)
}
