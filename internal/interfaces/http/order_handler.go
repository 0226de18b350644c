package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/application/orders"
	"github.com/jhoicas/Confecciones-api/internal/application/reports"
	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OrderHandler pedidos: CRUD, cambios de estado, avance y documentos.
type OrderHandler struct {
	uc      *orders.OrderUseCase
	reports *reports.ReportUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase, reportUC *reports.ReportUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, reports: reportUC}
}

// Create godoc
// @Summary      Registrar pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderRequest  true  "Cliente, fecha de entrega y líneas"
// @Success      201   {object}  dto.ActionResponse
// @Failure      400   {object}  dto.ActionResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusCreated, "pedido registrado", out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status       query  int     false  "Estado (1-6)"
// @Param        customer_id  query  string  false  "Cliente"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	f, err := orderFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update reemplaza cabecera y líneas de un pedido no terminal.
// PUT /api/orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "pedido actualizado", out)
}

// Delete DELETE /api/orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "pedido eliminado", nil)
}

// Transition devuelve un handler de estado fijo (start, produce, complete, deliver, cancel).
func (h *OrderHandler) Transition(target entity.OrderStatus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h.changeStatus(c, target)
	}
}

// ChangeStatus godoc
// @Summary      Cambiar estado del pedido
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del pedido"
// @Param        body  body  dto.ChangeOrderStatusRequest  true  "Estado destino"
// @Success      200   {object}  dto.ActionResponse
// @Failure      422   {object}  dto.ActionResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	return h.changeStatus(c, entity.OrderStatus(in.Status))
}

func (h *OrderHandler) changeStatus(c *fiber.Ctx, target entity.OrderStatus) error {
	out, err := h.uc.ChangeStatus(c.Context(), c.Params("id"), target)
	if err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "pedido en estado "+target.Label(), out)
}

// Progress GET /api/orders/:id/progress
func (h *OrderHandler) Progress(c *fiber.Ctx) error {
	out, err := h.uc.Progress(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SheetPDF descarga la hoja de producción.
// GET /api/orders/:id/pdf
func (h *OrderHandler) SheetPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.reports.OrderSheetPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

// ExportExcel exporta los pedidos filtrados.
// GET /api/orders/export.xlsx
func (h *OrderHandler) ExportExcel(c *fiber.Ctx) error {
	f, err := orderFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	xlsx, filename, err := h.reports.OrdersExcel(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(xlsx)
}

func orderFilter(c *fiber.Ctx) (repository.OrderFilter, error) {
	limit, offset := page(c)
	status := entity.OrderStatus(c.QueryInt("status", 0))
	if status != 0 && !status.IsValid() {
		return repository.OrderFilter{}, fmt.Errorf("%w: estado %d desconocido", domain.ErrInvalidInput, status)
	}
	return repository.OrderFilter{
		Status:     status,
		CustomerID: c.Query("customer_id"),
		Limit:      limit,
		Offset:     offset,
	}, nil
}
