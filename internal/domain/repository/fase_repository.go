package repository

import (
	"context"
	"time"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
)

// FaseRepository define el puerto de persistencia de las fases de producción
// (una tabla por departamento, orden_id único en cada una).
type FaseRepository interface {
	// CrearPendiente deja la fase del departamento en cola, sin dueño. Es un
	// upsert idempotente: si la fase ya existe no la pisa.
	CrearPendiente(ctx context.Context, dep produccion.Departamento, ordenID string, ahora time.Time) error
	// ObtenerPorOrden devuelve la fase o nil si aún no existe.
	ObtenerPorOrden(ctx context.Context, dep produccion.Departamento, ordenID string) (*entity.Fase, error)
	// Reclamar asigna la fase al trabajador solo si sigue libre. El
	// check-then-act es atómico en el almacén (un único statement
	// condicional), nunca un read-then-write de aplicación. Devuelve false
	// cuando otro trabajador ganó la carrera.
	Reclamar(ctx context.Context, dep produccion.Departamento, ordenID, trabajadorID string, ahora time.Time) (bool, error)
	// Actualizar persiste sub-estado, checklist, métricas y marcas de tiempo.
	Actualizar(ctx context.Context, dep produccion.Departamento, fase *entity.Fase) error
}
