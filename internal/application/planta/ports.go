// Package planta contiene los casos de uso del piso de producción: colas por
// departamento, reclamo de tareas, checklists y cierre de fases.
package planta

import (
	"context"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos del
// flujo productivo atados a ella. El reclamo de tarea, el cambio de estado
// global y la entrada de auditoría se confirman o descartan juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ordenRepo repository.OrdenRepository,
		faseRepo repository.FaseRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error) error
}

// Almacen guarda el contenido de un archivo adjunto y devuelve su URL.
type Almacen interface {
	Guardar(ctx context.Context, ordenID, nombre string, contenido []byte) (string, error)
}
