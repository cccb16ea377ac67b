package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/auth"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/clientes"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/facturacion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/historial"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/ordenes"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/planta"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrdenesUC    *ordenes.UseCase
	ColaUC       *planta.ColaUseCase
	PreprensaUC  *planta.PreprensaUseCase
	PrensaUC     *planta.PrensaUseCase
	PostprensaUC *planta.PostprensaUseCase
	EmitirUC     *facturacion.EmitirUseCase
	PDFUC        *facturacion.PDFUseCase
	ClientesUC   *clientes.UseCase
	HistorialUC  *historial.UseCase
	AuthUC       *auth.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Cada área de la imprenta tiene su
// grupo, restringido al rol del departamento (el admin entra a todo).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clientes (ventas)
	clientesGroup := protected.Group("/clientes", RequireRol(entity.RolVentas, entity.RolAdmin))
	clienteHandler := NewClienteHandler(deps.ClientesUC)
	clientesGroup.Get("/consulta/:numero", clienteHandler.Consulta)
	clientesGroup.Post("/", clienteHandler.Create)
	clientesGroup.Get("/", clienteHandler.Buscar)
	clientesGroup.Get("/:id", clienteHandler.GetByID)
	clientesGroup.Put("/:id", clienteHandler.Update)

	// Órdenes: flujo comercial (ventas)
	ordenesGroup := protected.Group("/ordenes", RequireRol(entity.RolVentas, entity.RolAdmin))
	ordenHandler := NewOrdenHandler(deps.OrdenesUC, deps.PreprensaUC)
	ordenesGroup.Post("/", ordenHandler.Create)
	ordenesGroup.Get("/", ordenHandler.List)
	ordenesGroup.Get("/buscar/:codigo", ordenHandler.Buscar)
	ordenesGroup.Get("/:id", ordenHandler.GetByID)
	ordenesGroup.Put("/:id", ordenHandler.Update)
	ordenesGroup.Post("/:id/convertir", ordenHandler.Convertir)
	ordenesGroup.Post("/:id/rechazar", ordenHandler.Rechazar)
	ordenesGroup.Post("/:id/cancelar", ordenHandler.Cancelar)
	ordenesGroup.Post("/:id/aprobar-diseno", ordenHandler.AprobarDiseno)

	plantaHandler := NewPlantaHandler(deps.ColaUC, deps.PreprensaUC, deps.PrensaUC, deps.PostprensaUC)

	// Pre-prensa: diseño, pruebas y placas
	preprensa := protected.Group("/preprensa", RequireRol(entity.RolPreprensa, entity.RolAdmin))
	preprensa.Get("/cola", plantaHandler.Cola(produccion.DepartamentoPreprensa))
	preprensa.Post("/reclamar", plantaHandler.Reclamar(produccion.DepartamentoPreprensa))
	preprensa.Get("/:ordenID", plantaHandler.Fase(produccion.DepartamentoPreprensa))
	preprensa.Post("/:ordenID/pasos", plantaHandler.MarcarPaso(produccion.DepartamentoPreprensa))
	preprensa.Post("/:ordenID/prueba", plantaHandler.SubirPrueba)
	preprensa.Post("/:ordenID/pase", plantaHandler.PaseAPrensa)

	// Prensa: tirada
	prensa := protected.Group("/prensa", RequireRol(entity.RolPrensa, entity.RolAdmin))
	prensa.Get("/cola", plantaHandler.Cola(produccion.DepartamentoPrensa))
	prensa.Post("/reclamar", plantaHandler.Reclamar(produccion.DepartamentoPrensa))
	prensa.Get("/:ordenID", plantaHandler.Fase(produccion.DepartamentoPrensa))
	prensa.Post("/:ordenID/preparacion", plantaHandler.IniciarPreparacion)
	prensa.Post("/:ordenID/impresion", plantaHandler.IniciarImpresion)
	prensa.Post("/:ordenID/finalizar", plantaHandler.FinalizarImpresion)
	prensa.Post("/:ordenID/incidencias", plantaHandler.ReportarIncidencia)

	// Post-prensa: acabados y control de calidad
	postprensa := protected.Group("/postprensa", RequireRol(entity.RolPostprensa, entity.RolAdmin))
	postprensa.Get("/cola", plantaHandler.Cola(produccion.DepartamentoPostprensa))
	postprensa.Post("/reclamar", plantaHandler.Reclamar(produccion.DepartamentoPostprensa))
	postprensa.Get("/:ordenID", plantaHandler.Fase(produccion.DepartamentoPostprensa))
	postprensa.Post("/:ordenID/pasos", plantaHandler.MarcarPaso(produccion.DepartamentoPostprensa))
	postprensa.Post("/:ordenID/completar", plantaHandler.Completar)

	// Facturación (ventas)
	facturas := protected.Group("/facturas", RequireRol(entity.RolVentas, entity.RolAdmin))
	facturaHandler := NewFacturaHandler(deps.EmitirUC, deps.PDFUC)
	facturas.Post("/", facturaHandler.Emitir)
	facturas.Get("/", facturaHandler.List)
	facturas.Get("/orden/:ordenID", facturaHandler.PorOrden)
	facturas.Get("/:id/pdf", facturaHandler.PDF)

	// Trazabilidad (cualquier usuario autenticado)
	historialHandler := NewHistorialHandler(deps.HistorialUC)
	protected.Get("/historial/:referencia", historialHandler.Trazabilidad)
}
