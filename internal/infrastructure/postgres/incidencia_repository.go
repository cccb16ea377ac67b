package postgres

import (
	"context"
	"fmt"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

var _ repository.IncidenciaRepository = (*IncidenciaRepo)(nil)

// IncidenciaRepo implementación del puerto IncidenciaRepository sobre PostgreSQL.
type IncidenciaRepo struct {
	q Querier
}

// NewIncidenciaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIncidenciaRepository(q Querier) *IncidenciaRepo {
	return &IncidenciaRepo{q: q}
}

// Crear persiste el reporte.
func (r *IncidenciaRepo) Crear(ctx context.Context, incidencia *entity.Incidencia) error {
	query := `
		INSERT INTO incidencias (id, orden_id, tipo, detalle, reportado_por, fecha_reporte)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query,
		incidencia.ID, incidencia.OrdenID, nullIfEmpty(incidencia.Tipo),
		incidencia.Detalle, incidencia.ReportadoPor, incidencia.FechaReporte,
	); err != nil {
		return fmt.Errorf("insert incidencia: %w", err)
	}
	return nil
}

// ListarPorOrden devuelve los reportes de la orden, más recientes primero.
func (r *IncidenciaRepo) ListarPorOrden(ctx context.Context, ordenID string) ([]*entity.Incidencia, error) {
	query := `
		SELECT id, orden_id, COALESCE(tipo, ''), detalle, reportado_por, fecha_reporte
		FROM incidencias WHERE orden_id = $1 ORDER BY fecha_reporte DESC`
	rows, err := r.q.Query(ctx, query, ordenID)
	if err != nil {
		return nil, fmt.Errorf("list incidencias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Incidencia
	for rows.Next() {
		var i entity.Incidencia
		if err := rows.Scan(&i.ID, &i.OrdenID, &i.Tipo, &i.Detalle, &i.ReportadoPor, &i.FechaReporte); err != nil {
			return nil, fmt.Errorf("scan incidencia: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
