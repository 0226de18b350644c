package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Confecciones-api/internal/application/dto"
	"github.com/jhoicas/Confecciones-api/internal/domain"
)

const internalMessage = "error interno, intente más tarde"

// errorStatus traduce un error de dominio a status HTTP y código.
// Lo que no es un error de dominio conocido es un 500.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrInUse):
		return fiber.StatusConflict, "IN_USE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInvalidTransition):
		return fiber.StatusUnprocessableEntity, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrInactiveAccount):
		return fiber.StatusForbidden, "INACTIVE_ACCOUNT"
	case errors.Is(err, domain.ErrAccountLocked):
		return fiber.StatusLocked, "ACCOUNT_LOCKED"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// errorMessage oculta el detalle de los errores internos; quedan solo en el log.
func errorMessage(c *fiber.Ctx, status int, err error) string {
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error no controlado")
		return internalMessage
	}
	return err.Error()
}

// respondError responde un error en endpoints de consulta.
func respondError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: errorMessage(c, status, err)})
}

// respondActionError responde un error en operaciones que modifican datos.
func respondActionError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ActionResponse{Success: false, Code: code, Message: errorMessage(c, status, err)})
}

// respondAction responde una operación exitosa con el sobre uniforme.
func respondAction(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(dto.ActionResponse{Success: true, Message: message, Data: data})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ActionResponse{Success: false, Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// page lee limit/offset con los topes de listados.
func page(c *fiber.Ctx) (limit, offset int) {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p.Limit, p.Offset
}
