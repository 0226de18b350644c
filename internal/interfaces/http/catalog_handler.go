package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/application/usecase"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

// CatalogHandler CRUD de catálogos simples; el tipo viaja en la ruta (/catalogs/:kind).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func kindParam(c *fiber.Ctx) entity.CatalogKind {
	return entity.CatalogKind(c.Params("kind"))
}

// Create POST /api/catalogs/:kind
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CatalogRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), kindParam(c), in)
	if err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusCreated, "valor de catálogo creado", out)
}

// List GET /api/catalogs/:kind
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), kindParam(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/catalogs/:kind/:id
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	var in dto.CatalogRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), kindParam(c), c.Params("id"), in)
	if err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "valor de catálogo actualizado", out)
}

// Delete DELETE /api/catalogs/:kind/:id
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), kindParam(c), c.Params("id")); err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "valor de catálogo eliminado", nil)
}
