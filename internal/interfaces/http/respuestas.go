package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
)

// responderError traduce los errores de dominio a códigos HTTP. Todos los
// handlers pasan por aquí para que el mismo error responda siempre igual.
func responderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNoEncontrado), errors.Is(err, domain.ErrUsuarioNoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.RespuestaError{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicado):
		return c.Status(fiber.StatusConflict).JSON(dto.RespuestaError{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrEdicionBloqueada):
		return c.Status(fiber.StatusConflict).JSON(dto.RespuestaError{Code: "EDIT_LOCKED", Message: err.Error()})
	case errors.Is(err, domain.ErrTransicionInvalida):
		return c.Status(fiber.StatusConflict).JSON(dto.RespuestaError{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrPasoFueraDeOrden):
		return c.Status(fiber.StatusConflict).JSON(dto.RespuestaError{Code: "STEP_OUT_OF_ORDER", Message: err.Error()})
	case errors.Is(err, domain.ErrTareaYaTomada):
		return c.Status(fiber.StatusConflict).JSON(dto.RespuestaError{Code: "TASK_TAKEN", Message: err.Error()})
	case errors.Is(err, domain.ErrYaFacturada):
		return c.Status(fiber.StatusConflict).JSON(dto.RespuestaError{Code: "ALREADY_INVOICED", Message: err.Error()})
	case errors.Is(err, domain.ErrConflictoEstado):
		return c.Status(fiber.StatusConflict).JSON(dto.RespuestaError{Code: "STATE_CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrNoAutorizado):
		return c.Status(fiber.StatusForbidden).JSON(dto.RespuestaError{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrCredencialesInvalid):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.RespuestaError{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrConsultaNoDisponible):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.RespuestaError{Code: "LOOKUP_UNAVAILABLE", Message: "padrón externo no disponible, intente más tarde"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.RespuestaError{Code: "INTERNAL", Message: err.Error()})
	}
}
