package facturacion

import (
	"context"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de
// facturación atados a ella. El correlativo, el comprobante, el flag de la
// orden y la entrada de auditoría se confirman o descartan juntos: un
// rollback no deja códigos FAC/BOL emitidos sin su comprobante.
type TxRunner interface {
	RunFacturacion(ctx context.Context, fn func(
		ordenRepo repository.OrdenRepository,
		facturaRepo repository.FacturaRepository,
		correlativoRepo repository.CorrelativoRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error) error
}

// PDFGenerator genera la representación gráfica del comprobante.
type PDFGenerator interface {
	GenerarPDF(ctx context.Context, factura *entity.Factura, orden *entity.Orden) ([]byte, error)
}
