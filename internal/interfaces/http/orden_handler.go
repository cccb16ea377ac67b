package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/ordenes"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/planta"
)

// OrdenHandler maneja el flujo comercial: cotización, conversión a OT,
// rechazo, cancelación y la aprobación del diseño en nombre del cliente.
type OrdenHandler struct {
	uc          *ordenes.UseCase
	preprensaUC *planta.PreprensaUseCase
}

// NewOrdenHandler construye el handler.
func NewOrdenHandler(uc *ordenes.UseCase, preprensaUC *planta.PreprensaUseCase) *OrdenHandler {
	return &OrdenHandler{uc: uc, preprensaUC: preprensaUC}
}

// Create crea una cotización.
// POST /api/ordenes
func (h *OrdenHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearCotizacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	orden, err := h.uc.CrearCotizacion(c.Context(), actorDe(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(orden)
}

// Update reescribe ítems y notas mientras la orden sea editable.
// PUT /api/ordenes/:id
func (h *OrdenHandler) Update(c *fiber.Ctx) error {
	var in dto.ActualizarOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	orden, err := h.uc.Actualizar(c.Context(), actorDe(c), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(orden)
}

// Convertir convierte la cotización en orden de trabajo.
// POST /api/ordenes/:id/convertir
func (h *OrdenHandler) Convertir(c *fiber.Ctx) error {
	orden, err := h.uc.ConvertirAOT(c.Context(), actorDe(c), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(orden)
}

// Rechazar marca la cotización como rechazada por el cliente.
// POST /api/ordenes/:id/rechazar
func (h *OrdenHandler) Rechazar(c *fiber.Ctx) error {
	var in dto.CerrarOrdenRequest
	_ = c.BodyParser(&in) // el motivo es opcional
	orden, err := h.uc.Rechazar(c.Context(), actorDe(c), c.Params("id"), in.Motivo)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(orden)
}

// Cancelar cancela la cotización.
// POST /api/ordenes/:id/cancelar
func (h *OrdenHandler) Cancelar(c *fiber.Ctx) error {
	var in dto.CerrarOrdenRequest
	_ = c.BodyParser(&in)
	orden, err := h.uc.Cancelar(c.Context(), actorDe(c), c.Params("id"), in.Motivo)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(orden)
}

// AprobarDiseno registra la aprobación del cliente sobre la prueba de diseño.
// POST /api/ordenes/:id/aprobar-diseno
func (h *OrdenHandler) AprobarDiseno(c *fiber.Ctx) error {
	if err := h.preprensaUC.AprobarDiseno(c.Context(), actorDe(c), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.RespuestaMensaje{Mensaje: "diseño aprobado"})
}

// GetByID obtiene una orden.
// GET /api/ordenes/:id
func (h *OrdenHandler) GetByID(c *fiber.Ctx) error {
	orden, err := h.uc.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(orden)
}

// Buscar localiza una orden por id, código COT o código OT.
// GET /api/ordenes/buscar/:codigo
func (h *OrdenHandler) Buscar(c *fiber.Ctx) error {
	orden, err := h.uc.BuscarPorCodigo(c.Context(), c.Params("codigo"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(orden)
}

// List lista las órdenes paginadas.
// GET /api/ordenes?limit=&offset=
func (h *OrdenHandler) List(c *fiber.Ctx) error {
	var p dto.Paginacion
	if err := c.QueryParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "VALIDATION", Message: "paginación inválida"})
	}
	p.Normalizar()
	list, err := h.uc.Listar(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(list)
}
