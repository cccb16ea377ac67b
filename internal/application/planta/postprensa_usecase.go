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

// PostprensaUseCase cubre los acabados: checklist de corte, encuadernación y
// empaquetado, control de calidad y cierre definitivo de la orden.
type PostprensaUseCase struct {
	txRunner TxRunner
}

// NewPostprensaUseCase construye el caso de uso.
func NewPostprensaUseCase(txRunner TxRunner) *PostprensaUseCase {
	return &PostprensaUseCase{txRunner: txRunner}
}

// MarcarPaso marca un paso del checklist de acabados. Completar el
// empaquetado mueve la orden a control de calidad.
func (uc *PostprensaUseCase) MarcarPaso(ctx context.Context, actor, trabajadorID, ordenID string, paso int) (*dto.FaseResponse, error) {
	var fase *entity.Fase
	err := uc.txRunner.Run(ctx, func(
		ordenRepo repository.OrdenRepository,
		faseRepo repository.FaseRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error {
		var err error
		fase, err = marcarPaso(ctx, ordenRepo, faseRepo, auditoriaRepo, produccion.DepartamentoPostprensa, actor, trabajadorID, ordenID, paso)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NuevaFaseResponse(fase)
	return &resp, nil
}

// Completar aprueba el control de calidad y cierra la orden. Exige el
// checklist de acabados completo y la orden en control de calidad. Completado
// es terminal: de ahí no se sale.
func (uc *PostprensaUseCase) Completar(ctx context.Context, actor, trabajadorID, ordenID string) (*dto.FaseResponse, error) {
	var fase *entity.Fase
	err := uc.txRunner.Run(ctx, func(
		ordenRepo repository.OrdenRepository,
		faseRepo repository.FaseRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error {
		var err error
		fase, err = cargarFaseDe(ctx, faseRepo, produccion.DepartamentoPostprensa, ordenID, trabajadorID)
		if err != nil {
			return err
		}
		def := produccion.DepartamentoPostprensa.Pasos()
		if !produccion.ChecklistCompleto(def, fase.Checklist) {
			return fmt.Errorf("%w: el checklist de acabados no está completo", domain.ErrConflictoEstado)
		}
		orden, err := ordenRepo.ObtenerPorID(ctx, ordenID)
		if err != nil {
			return err
		}
		if orden == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, ordenID)
		}
		if !orden.Estado.PuedeTransicionarA(produccion.EstadoCompletado) {
			return fmt.Errorf("%w: %q → %q", domain.ErrTransicionInvalida, orden.Estado, produccion.EstadoCompletado)
		}

		now := time.Now()
		if err := ordenRepo.ActualizarEstado(ctx, ordenID, produccion.EstadoCompletado); err != nil {
			return err
		}
		fase.Estado = produccion.FaseCompletada
		fase.FechaFin = &now
		if err := faseRepo.Actualizar(ctx, produccion.DepartamentoPostprensa, fase); err != nil {
			return err
		}
		return auditoriaRepo.Registrar(ctx, &entity.Auditoria{
			ID:        uuid.New().String(),
			Accion:    "ORDEN_COMPLETADA",
			Actor:     actor,
			Detalle:   fmt.Sprintf("Orden %s (%s) completada y lista para facturar", orden.OTID, orden.Codigo),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NuevaFaseResponse(fase)
	return &resp, nil
}
