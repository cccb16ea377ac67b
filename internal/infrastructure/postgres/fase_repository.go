package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

var _ repository.FaseRepository = (*FaseRepo)(nil)

// FaseRepo implementación del puerto FaseRepository sobre PostgreSQL. Cada
// departamento tiene su propia tabla con la misma forma y orden_id único.
type FaseRepo struct {
	q Querier
}

// NewFaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFaseRepository(q Querier) *FaseRepo {
	return &FaseRepo{q: q}
}

// faseTable resuelve la tabla del departamento. El nombre sale de un conjunto
// cerrado, nunca de entrada del usuario.
func faseTable(dep produccion.Departamento) (string, error) {
	switch dep {
	case produccion.DepartamentoPreprensa:
		return "fases_preprensa", nil
	case produccion.DepartamentoPrensa:
		return "fases_prensa", nil
	case produccion.DepartamentoPostprensa:
		return "fases_postprensa", nil
	}
	return "", fmt.Errorf("%w: departamento %q", domain.ErrEntradaInvalida, dep)
}

// CrearPendiente deja la fase en cola sin dueño. Idempotente: si ya existe no
// la pisa.
func (r *FaseRepo) CrearPendiente(ctx context.Context, dep produccion.Departamento, ordenID string, ahora time.Time) error {
	tabla, err := faseTable(dep)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO ` + tabla + ` (id, orden_id, estado, checklist, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (orden_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query,
		uuid.New().String(), ordenID, string(produccion.FasePendiente), dep.ChecklistVacio(), ahora,
	); err != nil {
		return fmt.Errorf("crear fase pendiente: %w", err)
	}
	return nil
}

// ObtenerPorOrden devuelve la fase o nil si aún no existe.
func (r *FaseRepo) ObtenerPorOrden(ctx context.Context, dep produccion.Departamento, ordenID string) (*entity.Fase, error) {
	tabla, err := faseTable(dep)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT id, orden_id, asignado_id, estado, checklist,
		       COALESCE(maquina_asignada, ''), COALESCE(consumo_papel, 0), COALESCE(desperdicio_papel, 0),
		       fecha_asignacion, fecha_inicio, fecha_envio_aprobacion,
		       fecha_inicio_impresion, fecha_inicio_calidad, fecha_fin
		FROM ` + tabla + ` WHERE orden_id = $1`
	var f entity.Fase
	var estado string
	err = r.q.QueryRow(ctx, query, ordenID).Scan(
		&f.ID, &f.OrdenID, &f.AsignadoID, &estado, &f.Checklist,
		&f.MaquinaAsignada, &f.ConsumoPapel, &f.DesperdicioPapel,
		&f.FechaAsignacion, &f.FechaInicio, &f.FechaEnvioAprobacion,
		&f.FechaInicioImpresion, &f.FechaInicioCalidad, &f.FechaFin,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fase: %w", err)
	}
	f.Estado = produccion.EstadoFase(estado)
	return &f, nil
}

// Reclamar asigna la fase al trabajador solo si sigue libre. Es un único
// upsert condicional: si la fase no existe se crea ya asignada; si existe, el
// WHERE del DO UPDATE solo deja pasar al primero. Cero filas afectadas
// significa que otro operador ganó la carrera.
func (r *FaseRepo) Reclamar(ctx context.Context, dep produccion.Departamento, ordenID, trabajadorID string, ahora time.Time) (bool, error) {
	tabla, err := faseTable(dep)
	if err != nil {
		return false, err
	}
	_, estadoFase := dep.EstadoAlReclamar()
	query := `
		INSERT INTO ` + tabla + ` (id, orden_id, asignado_id, estado, checklist, fecha_asignacion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (orden_id) DO UPDATE
		SET asignado_id      = EXCLUDED.asignado_id,
		    estado           = EXCLUDED.estado,
		    fecha_asignacion = EXCLUDED.fecha_asignacion
		WHERE ` + tabla + `.asignado_id IS NULL`
	tag, err := r.q.Exec(ctx, query,
		uuid.New().String(), ordenID, trabajadorID, string(estadoFase), dep.ChecklistVacio(), ahora,
	)
	if err != nil {
		return false, fmt.Errorf("reclamar fase: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Actualizar persiste sub-estado, checklist, métricas y marcas de tiempo.
func (r *FaseRepo) Actualizar(ctx context.Context, dep produccion.Departamento, fase *entity.Fase) error {
	tabla, err := faseTable(dep)
	if err != nil {
		return err
	}
	query := `
		UPDATE ` + tabla + `
		SET estado                 = $2,
		    checklist              = $3,
		    maquina_asignada       = $4,
		    consumo_papel          = $5,
		    desperdicio_papel      = $6,
		    fecha_inicio           = $7,
		    fecha_envio_aprobacion = $8,
		    fecha_inicio_impresion = $9,
		    fecha_inicio_calidad   = $10,
		    fecha_fin              = $11
		WHERE orden_id = $1`
	tag, err := r.q.Exec(ctx, query,
		fase.OrdenID, string(fase.Estado), fase.Checklist,
		nullIfEmpty(fase.MaquinaAsignada), fase.ConsumoPapel, fase.DesperdicioPapel,
		fase.FechaInicio, fase.FechaEnvioAprobacion, fase.FechaInicioImpresion,
		fase.FechaInicioCalidad, fase.FechaFin,
	)
	if err != nil {
		return fmt.Errorf("update fase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fase de %s para la orden %s", domain.ErrNoEncontrado, dep, fase.OrdenID)
	}
	return nil
}
