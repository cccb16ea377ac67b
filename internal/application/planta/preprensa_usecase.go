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

// PreprensaUseCase cubre el trabajo de diseño: checklist secuencial, envío de
// pruebas al cliente, registro de la aprobación y pase a prensa.
type PreprensaUseCase struct {
	txRunner    TxRunner
	archivoRepo repository.ArchivoRepository
	almacen     Almacen
}

// NewPreprensaUseCase construye el caso de uso.
func NewPreprensaUseCase(txRunner TxRunner, archivoRepo repository.ArchivoRepository, almacen Almacen) *PreprensaUseCase {
	return &PreprensaUseCase{txRunner: txRunner, archivoRepo: archivoRepo, almacen: almacen}
}

// MarcarPaso marca un paso del checklist de pre-prensa. El checklist
// autoritativo se relee dentro de la transacción, de modo que un cliente con
// una vista desactualizada no puede saltarse la dependencia entre pasos.
func (uc *PreprensaUseCase) MarcarPaso(ctx context.Context, actor, trabajadorID, ordenID string, paso int) (*dto.FaseResponse, error) {
	var fase *entity.Fase
	err := uc.txRunner.Run(ctx, func(
		ordenRepo repository.OrdenRepository,
		faseRepo repository.FaseRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error {
		var err error
		fase, err = marcarPaso(ctx, ordenRepo, faseRepo, auditoriaRepo, produccion.DepartamentoPreprensa, actor, trabajadorID, ordenID, paso)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NuevaFaseResponse(fase)
	return &resp, nil
}

// SubirPrueba guarda una prueba de diseño, registra sus metadatos con número
// de versión y, si aún no estaba marcado, completa el paso de envío al
// cliente (lo que mueve la orden a "En Aprobación de Cliente"). El dueño de
// la fase se valida antes de escribir al almacén: un upload rechazado no deja
// archivos ni metadatos huérfanos.
func (uc *PreprensaUseCase) SubirPrueba(ctx context.Context, actor, trabajadorID, ordenID, nombre string, contenido []byte) (*dto.FaseResponse, error) {
	if strings.TrimSpace(nombre) == "" || len(contenido) == 0 {
		return nil, fmt.Errorf("%w: archivo vacío", domain.ErrEntradaInvalida)
	}

	var fase *entity.Fase
	err := uc.txRunner.Run(ctx, func(
		ordenRepo repository.OrdenRepository,
		faseRepo repository.FaseRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error {
		var err error
		fase, err = cargarFaseDe(ctx, faseRepo, produccion.DepartamentoPreprensa, ordenID, trabajadorID)
		if err != nil {
			return err
		}

		url, err := uc.almacen.Guardar(ctx, ordenID, nombre, contenido)
		if err != nil {
			return err
		}
		previos, err := uc.archivoRepo.ListarPorOrden(ctx, ordenID)
		if err != nil {
			return err
		}
		version := 1
		for _, a := range previos {
			if a.TipoEmisor == entity.EmisorDisenador {
				version++
			}
		}
		if err := uc.archivoRepo.Crear(ctx, &entity.Archivo{
			ID:            uuid.New().String(),
			OrdenID:       ordenID,
			TipoEmisor:    entity.EmisorDisenador,
			NombreArchivo: nombre,
			URLArchivo:    url,
			Version:       version,
			CreatedAt:     time.Now(),
		}); err != nil {
			return err
		}

		if len(fase.Checklist) > produccion.PasoPruebaCliente && fase.Checklist[produccion.PasoPruebaCliente] {
			// Re-envío de una versión nueva: el paso ya está marcado, solo se
			// deja constancia en la trazabilidad.
			return auditoriaRepo.Registrar(ctx, &entity.Auditoria{
				ID:        uuid.New().String(),
				Accion:    "PRUEBA_REENVIADA",
				Actor:     actor,
				Detalle:   fmt.Sprintf("Prueba v%d (%s) enviada para la orden %s", version, nombre, ordenID),
				CreatedAt: time.Now(),
			})
		}
		fase, err = marcarPaso(ctx, ordenRepo, faseRepo, auditoriaRepo, produccion.DepartamentoPreprensa, actor, trabajadorID, ordenID, produccion.PasoPruebaCliente)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NuevaFaseResponse(fase)
	return &resp, nil
}

// AprobarDiseno registra la aprobación del cliente sobre la prueba enviada y
// habilita la generación de placas.
func (uc *PreprensaUseCase) AprobarDiseno(ctx context.Context, actor, ordenID string) error {
	return uc.txRunner.Run(ctx, func(
		ordenRepo repository.OrdenRepository,
		_ repository.FaseRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error {
		orden, err := ordenRepo.ObtenerPorID(ctx, ordenID)
		if err != nil {
			return err
		}
		if orden == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, ordenID)
		}
		if !orden.Estado.PuedeTransicionarA(produccion.EstadoDisenoAprobado) {
			return fmt.Errorf("%w: %q → %q", domain.ErrTransicionInvalida, orden.Estado, produccion.EstadoDisenoAprobado)
		}
		if err := ordenRepo.ActualizarEstado(ctx, ordenID, produccion.EstadoDisenoAprobado); err != nil {
			return err
		}
		return auditoriaRepo.Registrar(ctx, &entity.Auditoria{
			ID:        uuid.New().String(),
			Accion:    "DISENO_APROBADO",
			Actor:     actor,
			Detalle:   fmt.Sprintf("Cliente aprobó el diseño de la orden %s (%s)", orden.OTID, orden.Codigo),
			CreatedAt: time.Now(),
		})
	})
}

// PaseAPrensa cierra la fase de pre-prensa y entrega la orden a la cola de
// prensa. Exige el checklist completo (incluidas las placas).
func (uc *PreprensaUseCase) PaseAPrensa(ctx context.Context, actor, trabajadorID, ordenID string) error {
	return uc.txRunner.Run(ctx, func(
		ordenRepo repository.OrdenRepository,
		faseRepo repository.FaseRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error {
		fase, err := cargarFaseDe(ctx, faseRepo, produccion.DepartamentoPreprensa, ordenID, trabajadorID)
		if err != nil {
			return err
		}
		def := produccion.DepartamentoPreprensa.Pasos()
		if !produccion.ChecklistCompleto(def, fase.Checklist) {
			return fmt.Errorf("%w: el checklist de pre-prensa no está completo", domain.ErrConflictoEstado)
		}
		orden, err := ordenRepo.ObtenerPorID(ctx, ordenID)
		if err != nil {
			return err
		}
		if orden == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, ordenID)
		}
		if !orden.Estado.PuedeTransicionarA(produccion.EstadoEnPrensa) {
			return fmt.Errorf("%w: %q → %q", domain.ErrTransicionInvalida, orden.Estado, produccion.EstadoEnPrensa)
		}

		now := time.Now()
		if err := ordenRepo.ActualizarEstado(ctx, ordenID, produccion.EstadoEnPrensa); err != nil {
			return err
		}
		fase.Estado = produccion.FaseCompletada
		fase.FechaFin = &now
		if err := faseRepo.Actualizar(ctx, produccion.DepartamentoPreprensa, fase); err != nil {
			return err
		}
		if err := faseRepo.CrearPendiente(ctx, produccion.DepartamentoPrensa, ordenID, now); err != nil {
			return err
		}
		return auditoriaRepo.Registrar(ctx, &entity.Auditoria{
			ID:        uuid.New().String(),
			Accion:    "PASE_A_PRENSA",
			Actor:     actor,
			Detalle:   fmt.Sprintf("Orden %s (%s) enviada a la cola de prensa", orden.OTID, orden.Codigo),
			CreatedAt: now,
		})
	})
}

// marcarPaso es la evaluación compartida del checklist de pre y post-prensa:
// valida dueño, dependencia entre pasos, requisito de estado y aplica el
// efecto compuerta del paso sobre el estado global y el sub-estado de fase.
func marcarPaso(
	ctx context.Context,
	ordenRepo repository.OrdenRepository,
	faseRepo repository.FaseRepository,
	auditoriaRepo repository.AuditoriaRepository,
	dep produccion.Departamento,
	actor, trabajadorID, ordenID string,
	paso int,
) (*entity.Fase, error) {
	fase, err := cargarFaseDe(ctx, faseRepo, dep, ordenID, trabajadorID)
	if err != nil {
		return nil, err
	}
	orden, err := ordenRepo.ObtenerPorID(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, ordenID)
	}

	def := dep.Pasos()
	nuevo, pdef, err := produccion.Evaluar(def, fase.Checklist, paso)
	if err != nil {
		return nil, err
	}
	if pdef.RequiereEstado != "" && orden.Estado != pdef.RequiereEstado {
		return nil, fmt.Errorf("%w: %q exige que la orden esté en %q (actual: %q)",
			domain.ErrConflictoEstado, pdef.Nombre, pdef.RequiereEstado, orden.Estado)
	}

	now := time.Now()
	fase.Checklist = nuevo
	if fase.FechaInicio == nil {
		fase.FechaInicio = &now
	}
	if pdef.AlCompletar != "" {
		if !orden.Estado.PuedeTransicionarA(pdef.AlCompletar) {
			return nil, fmt.Errorf("%w: %q → %q", domain.ErrTransicionInvalida, orden.Estado, pdef.AlCompletar)
		}
		if err := ordenRepo.ActualizarEstado(ctx, ordenID, pdef.AlCompletar); err != nil {
			return nil, err
		}
		fase.Estado = pdef.AlCompletarFase
		switch pdef.AlCompletarFase {
		case produccion.FaseEnAprobacion:
			fase.FechaEnvioAprobacion = &now
		case produccion.FaseEnControlCalidad:
			fase.FechaInicioCalidad = &now
		}
	}
	if err := faseRepo.Actualizar(ctx, dep, fase); err != nil {
		return nil, err
	}
	if err := auditoriaRepo.Registrar(ctx, &entity.Auditoria{
		ID:        uuid.New().String(),
		Accion:    "PASO_COMPLETADO",
		Actor:     actor,
		Detalle:   fmt.Sprintf("Paso %q completado en %s para la orden %s", pdef.Nombre, dep, orden.OTID),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	return fase, nil
}
