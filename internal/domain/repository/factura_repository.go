package repository

import (
	"context"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
)

// FacturaRepository define el puerto de persistencia de comprobantes.
type FacturaRepository interface {
	// Crear inserta el comprobante. La unicidad por orden la garantiza el
	// constraint del almacén: una violación se reporta como domain.ErrYaFacturada.
	Crear(ctx context.Context, factura *entity.Factura) error
	ObtenerPorOrden(ctx context.Context, ordenID string) (*entity.Factura, error)
	ObtenerPorID(ctx context.Context, id string) (*entity.Factura, error)
	Listar(ctx context.Context, limit, offset int) ([]*entity.Factura, error)
}
