package postgres

import (
	"context"
	"fmt"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo implementación del log de trazabilidad sobre PostgreSQL.
// Solo inserta y lee: la tabla no tiene UPDATE ni DELETE en ningún camino.
type AuditoriaRepo struct {
	q Querier
}

// NewAuditoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// Registrar agrega una entrada al log.
func (r *AuditoriaRepo) Registrar(ctx context.Context, entrada *entity.Auditoria) error {
	query := `
		INSERT INTO auditoria (id, accion, actor, detalle, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query,
		entrada.ID, entrada.Accion, entrada.Actor, entrada.Detalle, entrada.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert auditoria: %w", err)
	}
	return nil
}

// ListarPorReferencia devuelve las entradas cuyo detalle menciona alguna de
// las referencias, ordenadas por fecha ascendente.
func (r *AuditoriaRepo) ListarPorReferencia(ctx context.Context, referencias []string) ([]*entity.Auditoria, error) {
	patrones := make([]string, 0, len(referencias))
	for _, ref := range referencias {
		if ref != "" {
			patrones = append(patrones, "%"+ref+"%")
		}
	}
	if len(patrones) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, accion, actor, detalle, created_at
		FROM auditoria
		WHERE detalle ILIKE ANY($1)
		ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, patrones)
	if err != nil {
		return nil, fmt.Errorf("list auditoria: %w", err)
	}
	defer rows.Close()
	var list []*entity.Auditoria
	for rows.Next() {
		var a entity.Auditoria
		if err := rows.Scan(&a.ID, &a.Accion, &a.Actor, &a.Detalle, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan auditoria: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
