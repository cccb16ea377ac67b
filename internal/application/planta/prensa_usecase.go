package planta

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

// PrensaUseCase cubre la tirada: preparación de máquina, impresión y cierre
// con métricas de papel. Prensa no usa checklist, su avance son sub-estados.
type PrensaUseCase struct {
	txRunner       TxRunner
	faseRepo       repository.FaseRepository
	incidenciaRepo repository.IncidenciaRepository
	auditoriaRepo  repository.AuditoriaRepository
}

// NewPrensaUseCase construye el caso de uso.
func NewPrensaUseCase(
	txRunner TxRunner,
	faseRepo repository.FaseRepository,
	incidenciaRepo repository.IncidenciaRepository,
	auditoriaRepo repository.AuditoriaRepository,
) *PrensaUseCase {
	return &PrensaUseCase{
		txRunner:       txRunner,
		faseRepo:       faseRepo,
		incidenciaRepo: incidenciaRepo,
		auditoriaRepo:  auditoriaRepo,
	}
}

// IniciarPreparacion fija la máquina y arranca la preparación de la tirada.
func (uc *PrensaUseCase) IniciarPreparacion(ctx context.Context, actor, trabajadorID, ordenID, maquina string) (*dto.FaseResponse, error) {
	maquina = strings.TrimSpace(maquina)
	if maquina == "" {
		return nil, fmt.Errorf("%w: debe indicar la máquina", domain.ErrEntradaInvalida)
	}
	return uc.avanzar(ctx, actor, trabajadorID, ordenID, produccion.EstadoEnPreparacion,
		"PREPARACION_INICIADA",
		func(fase *entity.Fase, now time.Time) {
			fase.Estado = produccion.FaseEnPreparacion
			fase.MaquinaAsignada = maquina
			fase.FechaInicio = &now
		})
}

// IniciarImpresion arranca la impresión propiamente dicha.
func (uc *PrensaUseCase) IniciarImpresion(ctx context.Context, actor, trabajadorID, ordenID string) (*dto.FaseResponse, error) {
	return uc.avanzar(ctx, actor, trabajadorID, ordenID, produccion.EstadoImprimiendo,
		"IMPRESION_INICIADA",
		func(fase *entity.Fase, now time.Time) {
			fase.Estado = produccion.FaseImprimiendo
			fase.FechaInicioImpresion = &now
		})
}

// FinalizarImpresion cierra la tirada con sus métricas de papel y entrega la
// orden a la cola de post-prensa. Las métricas se validan antes de tocar nada.
func (uc *PrensaUseCase) FinalizarImpresion(ctx context.Context, actor, trabajadorID, ordenID string, consumo, desperdicio int) (*dto.FaseResponse, error) {
	if err := produccion.ValidarMetricasPapel(consumo, desperdicio); err != nil {
		return nil, err
	}

	var fase *entity.Fase
	err := uc.txRunner.Run(ctx, func(
		ordenRepo repository.OrdenRepository,
		faseRepo repository.FaseRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error {
		var err error
		fase, err = cargarFaseDe(ctx, faseRepo, produccion.DepartamentoPrensa, ordenID, trabajadorID)
		if err != nil {
			return err
		}
		orden, err := ordenRepo.ObtenerPorID(ctx, ordenID)
		if err != nil {
			return err
		}
		if orden == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, ordenID)
		}
		if !orden.Estado.PuedeTransicionarA(produccion.EstadoEnPostPrensa) {
			return fmt.Errorf("%w: %q → %q", domain.ErrTransicionInvalida, orden.Estado, produccion.EstadoEnPostPrensa)
		}

		now := time.Now()
		if err := ordenRepo.ActualizarEstado(ctx, ordenID, produccion.EstadoEnPostPrensa); err != nil {
			return err
		}
		fase.Estado = produccion.FaseCompletada
		fase.ConsumoPapel = consumo
		fase.DesperdicioPapel = desperdicio
		fase.FechaFin = &now
		if err := faseRepo.Actualizar(ctx, produccion.DepartamentoPrensa, fase); err != nil {
			return err
		}
		if err := faseRepo.CrearPendiente(ctx, produccion.DepartamentoPostprensa, ordenID, now); err != nil {
			return err
		}
		return auditoriaRepo.Registrar(ctx, &entity.Auditoria{
			ID:     uuid.New().String(),
			Accion: "IMPRESION_FINALIZADA",
			Actor:  actor,
			Detalle: fmt.Sprintf("Orden %s impresa: %d pliegos consumidos, %d de desperdicio; enviada a post-prensa",
				orden.OTID, consumo, desperdicio),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NuevaFaseResponse(fase)
	return &resp, nil
}

// ReportarIncidencia deja constancia de un problema de planta. No altera el
// estado de la orden ni de la fase.
func (uc *PrensaUseCase) ReportarIncidencia(ctx context.Context, actor, trabajadorID, ordenID, tipo, detalle string) error {
	if strings.TrimSpace(detalle) == "" {
		return fmt.Errorf("%w: la incidencia requiere una descripción", domain.ErrEntradaInvalida)
	}
	if _, err := cargarFaseDe(ctx, uc.faseRepo, produccion.DepartamentoPrensa, ordenID, trabajadorID); err != nil {
		return err
	}
	now := time.Now()
	if err := uc.incidenciaRepo.Crear(ctx, &entity.Incidencia{
		ID:           uuid.New().String(),
		OrdenID:      ordenID,
		Tipo:         tipo,
		Detalle:      detalle,
		ReportadoPor: trabajadorID,
		FechaReporte: now,
	}); err != nil {
		return err
	}
	return uc.auditoriaRepo.Registrar(ctx, &entity.Auditoria{
		ID:        uuid.New().String(),
		Accion:    "INCIDENCIA_REPORTADA",
		Actor:     actor,
		Detalle:   fmt.Sprintf("Incidencia en la orden %s: %s", ordenID, detalle),
		CreatedAt: now,
	})
}

// avanzar aplica una transición de sub-estado de prensa con su transición
// global equivalente, validando dueño y máquina de estados.
func (uc *PrensaUseCase) avanzar(
	ctx context.Context,
	actor, trabajadorID, ordenID string,
	destino produccion.Estado,
	accion string,
	aplicar func(fase *entity.Fase, now time.Time),
) (*dto.FaseResponse, error) {
	var fase *entity.Fase
	err := uc.txRunner.Run(ctx, func(
		ordenRepo repository.OrdenRepository,
		faseRepo repository.FaseRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error {
		var err error
		fase, err = cargarFaseDe(ctx, faseRepo, produccion.DepartamentoPrensa, ordenID, trabajadorID)
		if err != nil {
			return err
		}
		orden, err := ordenRepo.ObtenerPorID(ctx, ordenID)
		if err != nil {
			return err
		}
		if orden == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, ordenID)
		}
		if !orden.Estado.PuedeTransicionarA(destino) {
			return fmt.Errorf("%w: %q → %q", domain.ErrTransicionInvalida, orden.Estado, destino)
		}

		now := time.Now()
		if err := ordenRepo.ActualizarEstado(ctx, ordenID, destino); err != nil {
			return err
		}
		aplicar(fase, now)
		if err := faseRepo.Actualizar(ctx, produccion.DepartamentoPrensa, fase); err != nil {
			return err
		}
		return auditoriaRepo.Registrar(ctx, &entity.Auditoria{
			ID:        uuid.New().String(),
			Accion:    accion,
			Actor:     actor,
			Detalle:   fmt.Sprintf("Orden %s pasó a %q", orden.OTID, destino),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NuevaFaseResponse(fase)
	return &resp, nil
}
