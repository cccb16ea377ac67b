package repository

import (
	"context"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
)

// AuditoriaRepository define el puerto del log de trazabilidad.
// Es insert-only: no existen operaciones de actualización ni borrado.
type AuditoriaRepository interface {
	Registrar(ctx context.Context, entrada *entity.Auditoria) error
	// ListarPorReferencia devuelve las entradas cuyo detalle menciona alguna
	// de las referencias (id, código COT u OT), ordenadas por fecha.
	ListarPorReferencia(ctx context.Context, referencias []string) ([]*entity.Auditoria, error)
}
