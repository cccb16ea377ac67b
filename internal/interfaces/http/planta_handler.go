package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/planta"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
)

// PlantaHandler maneja el trabajo de planta: colas por departamento, reclamo
// de tareas, checklists y los avances propios de cada área.
type PlantaHandler struct {
	colaUC       *planta.ColaUseCase
	preprensaUC  *planta.PreprensaUseCase
	prensaUC     *planta.PrensaUseCase
	postprensaUC *planta.PostprensaUseCase
}

// NewPlantaHandler construye el handler.
func NewPlantaHandler(
	colaUC *planta.ColaUseCase,
	preprensaUC *planta.PreprensaUseCase,
	prensaUC *planta.PrensaUseCase,
	postprensaUC *planta.PostprensaUseCase,
) *PlantaHandler {
	return &PlantaHandler{
		colaUC:       colaUC,
		preprensaUC:  preprensaUC,
		prensaUC:     prensaUC,
		postprensaUC: postprensaUC,
	}
}

// Cola lista las órdenes sin dueño en la cola del departamento.
// GET /api/{departamento}/cola
func (h *PlantaHandler) Cola(dep produccion.Departamento) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := h.colaUC.ListarCola(c.Context(), dep)
		if err != nil {
			return responderError(c, err)
		}
		return c.JSON(list)
	}
}

// Fase devuelve la fase del departamento para una orden.
// GET /api/{departamento}/:ordenID
func (h *PlantaHandler) Fase(dep produccion.Departamento) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fase, err := h.colaUC.ObtenerFase(c.Context(), dep, c.Params("ordenID"))
		if err != nil {
			return responderError(c, err)
		}
		return c.JSON(fase)
	}
}

// Reclamar toma una orden de la cola para el trabajador autenticado. Si dos
// trabajadores reclaman a la vez, exactamente uno gana.
// POST /api/{departamento}/reclamar
func (h *PlantaHandler) Reclamar(dep produccion.Departamento) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.ReclamarRequest
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		fase, err := h.colaUC.Reclamar(c.Context(), dep, actorDe(c), GetUserID(c), in.OrdenID)
		if err != nil {
			return responderError(c, err)
		}
		return c.JSON(fase)
	}
}

// MarcarPaso marca un paso del checklist del departamento.
// POST /api/{departamento}/:ordenID/pasos
func (h *PlantaHandler) MarcarPaso(dep produccion.Departamento) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in dto.MarcarPasoRequest
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
		var (
			fase *dto.FaseResponse
			err  error
		)
		switch dep {
		case produccion.DepartamentoPostprensa:
			fase, err = h.postprensaUC.MarcarPaso(c.Context(), actorDe(c), GetUserID(c), c.Params("ordenID"), in.Paso)
		default:
			fase, err = h.preprensaUC.MarcarPaso(c.Context(), actorDe(c), GetUserID(c), c.Params("ordenID"), in.Paso)
		}
		if err != nil {
			return responderError(c, err)
		}
		return c.JSON(fase)
	}
}

// SubirPrueba recibe la prueba de diseño como multipart ("archivo") y la envía
// al cliente: marca el paso de envío si aún no estaba marcado.
// POST /api/preprensa/:ordenID/prueba
func (h *PlantaHandler) SubirPrueba(c *fiber.Ctx) error {
	fh, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "VALIDATION", Message: "se requiere el archivo de la prueba (campo 'archivo')"})
	}
	f, err := fh.Open()
	if err != nil {
		return responderError(c, err)
	}
	defer f.Close()
	contenido, err := io.ReadAll(f)
	if err != nil {
		return responderError(c, err)
	}

	fase, err := h.preprensaUC.SubirPrueba(c.Context(), actorDe(c), GetUserID(c), c.Params("ordenID"), fh.Filename, contenido)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(fase)
}

// PaseAPrensa cierra pre-prensa y entrega la orden a la cola de prensa.
// POST /api/preprensa/:ordenID/pase
func (h *PlantaHandler) PaseAPrensa(c *fiber.Ctx) error {
	if err := h.preprensaUC.PaseAPrensa(c.Context(), actorDe(c), GetUserID(c), c.Params("ordenID")); err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.RespuestaMensaje{Mensaje: "orden enviada a prensa"})
}

// IniciarPreparacion fija la máquina y arranca la preparación de la tirada.
// POST /api/prensa/:ordenID/preparacion
func (h *PlantaHandler) IniciarPreparacion(c *fiber.Ctx) error {
	var in dto.AsignarMaquinaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fase, err := h.prensaUC.IniciarPreparacion(c.Context(), actorDe(c), GetUserID(c), c.Params("ordenID"), in.Maquina)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(fase)
}

// IniciarImpresion arranca la impresión.
// POST /api/prensa/:ordenID/impresion
func (h *PlantaHandler) IniciarImpresion(c *fiber.Ctx) error {
	fase, err := h.prensaUC.IniciarImpresion(c.Context(), actorDe(c), GetUserID(c), c.Params("ordenID"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(fase)
}

// FinalizarImpresion cierra la tirada con sus métricas de papel.
// POST /api/prensa/:ordenID/finalizar
func (h *PlantaHandler) FinalizarImpresion(c *fiber.Ctx) error {
	var in dto.FinalizarImpresionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fase, err := h.prensaUC.FinalizarImpresion(c.Context(), actorDe(c), GetUserID(c), c.Params("ordenID"), in.ConsumoPapel, in.DesperdicioPapel)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(fase)
}

// ReportarIncidencia registra un problema de planta sobre la orden.
// POST /api/prensa/:ordenID/incidencias
func (h *PlantaHandler) ReportarIncidencia(c *fiber.Ctx) error {
	var in dto.ReportarIncidenciaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.RespuestaError{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.prensaUC.ReportarIncidencia(c.Context(), actorDe(c), GetUserID(c), c.Params("ordenID"), in.Tipo, in.Descripcion); err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RespuestaMensaje{Mensaje: "incidencia registrada"})
}

// Completar aprueba el control de calidad y cierra la orden.
// POST /api/postprensa/:ordenID/completar
func (h *PlantaHandler) Completar(c *fiber.Ctx) error {
	fase, err := h.postprensaUC.Completar(c.Context(), actorDe(c), GetUserID(c), c.Params("ordenID"))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(fase)
}
