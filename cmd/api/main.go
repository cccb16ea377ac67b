package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/auth"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/clientes"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/facturacion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/historial"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/ordenes"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/planta"
	infraalmacen "github.com/Learning202413/Final-Impersos-S.R.L/internal/infrastructure/almacen"
	infraconsulta "github.com/Learning202413/Final-Impersos-S.R.L/internal/infrastructure/consulta"
	infrapdf "github.com/Learning202413/Final-Impersos-S.R.L/internal/infrastructure/pdf"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/infrastructure/postgres"
	httpRouter "github.com/Learning202413/Final-Impersos-S.R.L/internal/interfaces/http"
	"github.com/Learning202413/Final-Impersos-S.R.L/pkg/config"
	"github.com/Learning202413/Final-Impersos-S.R.L/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	ordenRepo := postgres.NewOrdenRepository(pool)
	faseRepo := postgres.NewFaseRepository(pool)
	facturaRepo := postgres.NewFacturaRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	incidenciaRepo := postgres.NewIncidenciaRepository(pool)
	archivoRepo := postgres.NewArchivoRepository(pool)
	auditoriaRepo := postgres.NewAuditoriaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	almacenFS, err := infraalmacen.NewFilesystem(cfg.Archivos.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de archivos")
	}
	consultaClient := infraconsulta.NewAPIsPeruClient(cfg.Consulta)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	ordenesUC := ordenes.NewUseCase(txRunner, ordenRepo, clienteRepo)
	colaUC := planta.NewColaUseCase(txRunner, ordenRepo, faseRepo)
	preprensaUC := planta.NewPreprensaUseCase(txRunner, archivoRepo, almacenFS)
	prensaUC := planta.NewPrensaUseCase(txRunner, faseRepo, incidenciaRepo, auditoriaRepo)
	postprensaUC := planta.NewPostprensaUseCase(txRunner)
	emitirUC := facturacion.NewEmitirUseCase(txRunner, ordenRepo, facturaRepo, clienteRepo)
	pdfUC := facturacion.NewPDFUseCase(facturaRepo, ordenRepo, pdfGenerator)
	clientesUC := clientes.NewUseCase(clienteRepo, consultaClient)
	historialUC := historial.NewUseCase(ordenRepo, auditoriaRepo)
	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Imprenta API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrdenesUC:    ordenesUC,
		ColaUC:       colaUC,
		PreprensaUC:  preprensaUC,
		PrensaUC:     prensaUC,
		PostprensaUC: postprensaUC,
		EmitirUC:     emitirUC,
		PDFUC:        pdfUC,
		ClientesUC:   clientesUC,
		HistorialUC:  historialUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	httpLog := log.Componente("http")
	go func() {
		httpLog.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor escuchando")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			httpLog.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
