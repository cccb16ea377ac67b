package repository

import (
	"context"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
)

// IncidenciaRepository define el puerto de reportes de planta.
type IncidenciaRepository interface {
	Crear(ctx context.Context, incidencia *entity.Incidencia) error
	ListarPorOrden(ctx context.Context, ordenID string) ([]*entity.Incidencia, error)
}
