package planta

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

// ColaUseCase gestiona la cola compartida de cada departamento y el reclamo
// exclusivo de tareas.
type ColaUseCase struct {
	txRunner  TxRunner
	ordenRepo repository.OrdenRepository
	faseRepo  repository.FaseRepository
}

// NewColaUseCase construye el caso de uso.
func NewColaUseCase(txRunner TxRunner, ordenRepo repository.OrdenRepository, faseRepo repository.FaseRepository) *ColaUseCase {
	return &ColaUseCase{txRunner: txRunner, ordenRepo: ordenRepo, faseRepo: faseRepo}
}

// ListarCola devuelve las órdenes que esperan sin dueño en la cola del
// departamento.
func (uc *ColaUseCase) ListarCola(ctx context.Context, dep produccion.Departamento) ([]dto.OrdenResponse, error) {
	if !dep.EsValido() {
		return nil, fmt.Errorf("%w: departamento %q", domain.ErrEntradaInvalida, dep)
	}
	list, err := uc.ordenRepo.ListarColaSinAsignar(ctx, dep)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrdenResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.NuevaOrdenResponse(o))
	}
	return items, nil
}

// ObtenerFase devuelve la fase del departamento para una orden.
func (uc *ColaUseCase) ObtenerFase(ctx context.Context, dep produccion.Departamento, ordenID string) (*dto.FaseResponse, error) {
	if !dep.EsValido() {
		return nil, fmt.Errorf("%w: departamento %q", domain.ErrEntradaInvalida, dep)
	}
	fase, err := uc.faseRepo.ObtenerPorOrden(ctx, dep, ordenID)
	if err != nil {
		return nil, err
	}
	if fase == nil {
		return nil, fmt.Errorf("%w: fase de %s para la orden %s", domain.ErrNoEncontrado, dep, ordenID)
	}
	resp := dto.NuevaFaseResponse(fase)
	return &resp, nil
}

// Reclamar toma una tarea de la cola para el trabajador. El reclamo es
// atómico en el almacén: si N trabajadores reclaman la misma orden a la vez,
// exactamente uno recibe la tarea y el resto obtiene ErrTareaYaTomada.
func (uc *ColaUseCase) Reclamar(ctx context.Context, dep produccion.Departamento, actor, trabajadorID, ordenID string) (*dto.FaseResponse, error) {
	if !dep.EsValido() {
		return nil, fmt.Errorf("%w: departamento %q", domain.ErrEntradaInvalida, dep)
	}
	if ordenID == "" || trabajadorID == "" {
		return nil, fmt.Errorf("%w: orden y trabajador son obligatorios", domain.ErrEntradaInvalida)
	}

	var fase *entity.Fase
	err := uc.txRunner.Run(ctx, func(
		ordenRepo repository.OrdenRepository,
		faseRepo repository.FaseRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error {
		orden, err := ordenRepo.ObtenerPorID(ctx, ordenID)
		if err != nil {
			return err
		}
		if orden == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, ordenID)
		}
		if orden.Estado != dep.EstadoCola() {
			return fmt.Errorf("%w: la orden está en %q, no en la cola de %s", domain.ErrConflictoEstado, orden.Estado, dep)
		}

		now := time.Now()
		ok, err := faseRepo.Reclamar(ctx, dep, ordenID, trabajadorID, now)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrTareaYaTomada
		}

		estadoGlobal, _ := dep.EstadoAlReclamar()
		if err := ordenRepo.ActualizarEstado(ctx, ordenID, estadoGlobal); err != nil {
			return err
		}
		fase, err = faseRepo.ObtenerPorOrden(ctx, dep, ordenID)
		if err != nil {
			return err
		}
		return auditoriaRepo.Registrar(ctx, &entity.Auditoria{
			ID:        uuid.New().String(),
			Accion:    "TAREA_RECLAMADA",
			Actor:     actor,
			Detalle:   fmt.Sprintf("Orden %s (%s) reclamada en %s", orden.OTID, orden.Codigo, dep),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NuevaFaseResponse(fase)
	return &resp, nil
}

// cargarFaseDe lee la fase y verifica que el trabajador sea su dueño actual.
func cargarFaseDe(ctx context.Context, faseRepo repository.FaseRepository, dep produccion.Departamento, ordenID, trabajadorID string) (*entity.Fase, error) {
	fase, err := faseRepo.ObtenerPorOrden(ctx, dep, ordenID)
	if err != nil {
		return nil, err
	}
	if fase == nil {
		return nil, fmt.Errorf("%w: fase de %s para la orden %s", domain.ErrNoEncontrado, dep, ordenID)
	}
	if !fase.EsDe(trabajadorID) {
		return nil, fmt.Errorf("%w: la tarea pertenece a otro operador", domain.ErrNoAutorizado)
	}
	return fase, nil
}
