package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/facturacion"
)

// FacturaHandler maneja la emisión y consulta de comprobantes.
type FacturaHandler struct {
	emitirUC *facturacion.EmitirUseCase
	pdfUC    *facturacion.PDFUseCase
}

// NewFacturaHandler construye el handler.
func NewFacturaHandler(emitirUC *facturacion.EmitirUseCase, pdfUC *facturacion.PDFUseCase) *FacturaHandler {
	return &FacturaHandler{emitirUC: emitirUC, pdfUC: pdfUC}
}

// Emitir emite el comprobante de una orden completada. Idempotente: una
// segunda emisión sobre la misma orden responde 409 ALREADY_INVOICED.
// POST /api/facturas
func (h *FacturaHandler) Emitir(c *fiber.Ctx) error {
	var in dto.EmitirDocumentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.OrdenID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "VALIDATION", Message: "orden_id requerido"})
	}
	factura, err := h.emitirUC.Emitir(c.Context(), actorDe(c), in.OrdenID)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(factura)
}

// PorOrden devuelve el comprobante emitido sobre una orden.
// GET /api/facturas/orden/:ordenID
func (h *FacturaHandler) PorOrden(c *fiber.Ctx) error {
	factura, err := h.emitirUC.ObtenerPorOrden(c.Context(), c.Params("ordenID"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(factura)
}

// List lista los comprobantes paginados.
// GET /api/facturas?limit=&offset=
func (h *FacturaHandler) List(c *fiber.Ctx) error {
	var p dto.Paginacion
	if err := c.QueryParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "VALIDATION", Message: "paginación inválida"})
	}
	p.Normalizar()
	list, err := h.emitirUC.Listar(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(list)
}

// PDF descarga la representación gráfica del comprobante.
// GET /api/facturas/:id/pdf
func (h *FacturaHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DescargarPDF(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
