package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/historial"
)

// HistorialHandler expone la trazabilidad de una orden.
type HistorialHandler struct {
	uc *historial.UseCase
}

// NewHistorialHandler construye el handler.
func NewHistorialHandler(uc *historial.UseCase) *HistorialHandler {
	return &HistorialHandler{uc: uc}
}

// Trazabilidad devuelve la línea de tiempo de la orden. Acepta id, código COT
// o código OT como referencia.
// GET /api/historial/:referencia
func (h *HistorialHandler) Trazabilidad(c *fiber.Ctx) error {
	out, err := h.uc.Trazabilidad(c.Context(), c.Params("referencia"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
