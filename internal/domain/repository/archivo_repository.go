package repository

import (
	"context"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
)

// ArchivoRepository define el puerto de metadatos de archivos de la orden.
type ArchivoRepository interface {
	Crear(ctx context.Context, archivo *entity.Archivo) error
	ListarPorOrden(ctx context.Context, ordenID string) ([]*entity.Archivo, error)
}
