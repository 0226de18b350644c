package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Confecciones-api/internal/application/assignments"
	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

// AssignmentHandler asignación de tareas de producción y su ciclo de estados.
type AssignmentHandler struct {
	uc *assignments.AssignmentUseCase
}

// NewAssignmentHandler construye el handler.
func NewAssignmentHandler(uc *assignments.AssignmentUseCase) *AssignmentHandler {
	return &AssignmentHandler{uc: uc}
}

// Create godoc
// @Summary      Asignar tarea
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssignmentRequest  true  "Usuario, producto y tarea"
// @Success      201   {object}  dto.ActionResponse
// @Failure      409   {object}  dto.ActionResponse
// @Router       /api/assignments [post]
func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAssignmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusCreated, "tarea asignada", out)
}

// BulkAssign godoc
// @Summary      Asignación masiva (usuarios × productos × tareas)
// @Tags         assignments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAssignmentRequest  true  "Listas de ids"
// @Success      201   {object}  dto.ActionResponse
// @Router       /api/assignments/bulk [post]
func (h *AssignmentHandler) BulkAssign(c *fiber.Ctx) error {
	var in dto.BulkAssignmentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.BulkAssign(c.Context(), in)
	if err != nil {
		return respondActionError(c, err)
	}
	msg := fmt.Sprintf("%d asignaciones creadas, %d omitidas", out.Created, out.Skipped)
	return respondAction(c, fiber.StatusCreated, msg, out)
}

// List lista asignaciones. Un usuario sin rol de supervisión solo ve las propias.
// GET /api/assignments
func (h *AssignmentHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	status := entity.AssignmentStatus(c.QueryInt("status", 0))
	if status != 0 && !status.IsValid() {
		return respondError(c, fmt.Errorf("%w: estado %d desconocido", domain.ErrInvalidInput, status))
	}
	f := repository.AssignmentFilter{
		UserID:    c.Query("user_id"),
		ProductID: c.Query("product_id"),
		TaskID:    c.Query("task_id"),
		Status:    status,
		Limit:     limit,
		Offset:    offset,
	}
	if actor := actorFrom(c); !actor.IsSupervisor() {
		f.UserID = actor.UserID
	}
	out, err := h.uc.List(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/assignments/:id
func (h *AssignmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Start PATCH /api/assignments/:id/start
func (h *AssignmentHandler) Start(c *fiber.Ctx) error {
	out, err := h.uc.Start(c.Context(), actorFrom(c), c.Params("id"))
	return h.statusResult(c, out, err)
}

// Complete PATCH /api/assignments/:id/complete
func (h *AssignmentHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.Context(), actorFrom(c), c.Params("id"))
	return h.statusResult(c, out, err)
}

// Pause PATCH /api/assignments/:id/pause
func (h *AssignmentHandler) Pause(c *fiber.Ctx) error {
	out, err := h.uc.Pause(c.Context(), actorFrom(c), c.Params("id"))
	return h.statusResult(c, out, err)
}

// ChangeStatus PATCH /api/assignments/:id/status
func (h *AssignmentHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeAssignmentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ChangeStatus(c.Context(), actorFrom(c), c.Params("id"), entity.AssignmentStatus(in.Status))
	return h.statusResult(c, out, err)
}

func (h *AssignmentHandler) statusResult(c *fiber.Ctx, out *dto.AssignmentResponse, err error) error {
	if err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "asignación en estado "+out.StatusLabel, out)
}

// Delete elimina una asignación no completada.
// DELETE /api/assignments/:id
func (h *AssignmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondActionError(c, err)
	}
	return respondAction(c, fiber.StatusOK, "asignación eliminada", nil)
}
