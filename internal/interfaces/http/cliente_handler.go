package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/clientes"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
)

// ClienteHandler maneja el directorio de clientes y la consulta del padrón.
type ClienteHandler struct {
	uc *clientes.UseCase
}

// NewClienteHandler construye el handler.
func NewClienteHandler(uc *clientes.UseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// Create da de alta un cliente.
// POST /api/clientes
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cliente, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cliente)
}

// Update edita contacto y dirección. El documento es inmutable.
// PUT /api/clientes/:id
func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	var in dto.ActualizarClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cliente, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(cliente)
}

// GetByID obtiene un cliente.
// GET /api/clientes/:id
func (h *ClienteHandler) GetByID(c *fiber.Ctx) error {
	cliente, err := h.uc.Obtener(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(cliente)
}

// Buscar filtra clientes por razón social o documento.
// GET /api/clientes?q=&limit=
func (h *ClienteHandler) Buscar(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.uc.Buscar(c.Context(), c.Query("q"), limit)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(list)
}

// Consulta busca el documento en el padrón externo (RENIEC/SUNAT) para
// autocompletar el alta.
// GET /api/clientes/consulta/:numero
func (h *ClienteHandler) Consulta(c *fiber.Ctx) error {
	out, err := h.uc.ConsultarDocumento(c.Context(), c.Params("numero"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
