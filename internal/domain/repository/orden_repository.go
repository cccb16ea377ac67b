package repository

import (
	"context"
	"time"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
)

// OrdenRepository define el puerto de persistencia de órdenes e ítems.
type OrdenRepository interface {
	// Crear persiste la cabecera y sus ítems.
	Crear(ctx context.Context, orden *entity.Orden) error
	// Actualizar reescribe cabecera e ítems (borra los anteriores e inserta
	// los nuevos, como una sola unidad de trabajo).
	Actualizar(ctx context.Context, orden *entity.Orden) error
	// ObtenerPorID devuelve la orden con ítems y nombre de cliente, o nil si
	// no existe.
	ObtenerPorID(ctx context.Context, id string) (*entity.Orden, error)
	// BuscarPorCodigo localiza una orden por id, código COT o código OT.
	BuscarPorCodigo(ctx context.Context, codigo string) (*entity.Orden, error)
	Listar(ctx context.Context, limit, offset int) ([]*entity.Orden, error)
	// ListarColaSinAsignar devuelve las órdenes en el estado de cola del
	// departamento cuya fase sigue sin dueño (o aún no existe).
	ListarColaSinAsignar(ctx context.Context, dep produccion.Departamento) ([]*entity.Orden, error)
	// ActualizarEstado cambia solo el estado global.
	ActualizarEstado(ctx context.Context, id string, estado produccion.Estado) error
	// ConvertirAOT asigna el código OT y el estado inicial de producción solo
	// si la orden sigue en negociación (condicional atómico). Devuelve false
	// si la condición ya no se cumplía.
	ConvertirAOT(ctx context.Context, id, otID string, ahora time.Time) (bool, error)
	// MarcarFacturada enciende el flag de facturación (nunca lo apaga).
	MarcarFacturada(ctx context.Context, id string) error
}
