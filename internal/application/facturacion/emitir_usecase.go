package facturacion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

// EmitirUseCase emite el comprobante fiscal de una orden completada: Boleta
// para persona natural, Factura para persona jurídica.
type EmitirUseCase struct {
	txRunner    TxRunner
	ordenRepo   repository.OrdenRepository
	facturaRepo repository.FacturaRepository
	clienteRepo repository.ClienteRepository
}

// NewEmitirUseCase construye el caso de uso.
func NewEmitirUseCase(
	txRunner TxRunner,
	ordenRepo repository.OrdenRepository,
	facturaRepo repository.FacturaRepository,
	clienteRepo repository.ClienteRepository,
) *EmitirUseCase {
	return &EmitirUseCase{
		txRunner:    txRunner,
		ordenRepo:   ordenRepo,
		facturaRepo: facturaRepo,
		clienteRepo: clienteRepo,
	}
}

// Emitir genera el comprobante de la orden. La emisión es idempotente: existe
// a lo sumo un comprobante por orden, garantizado por el constraint único del
// almacén y no por una verificación previa de la aplicación. Dos emisiones
// concurrentes producen exactamente un comprobante; la perdedora recibe
// ErrYaFacturada.
func (uc *EmitirUseCase) Emitir(ctx context.Context, actor, ordenID string) (*dto.FacturaResponse, error) {
	orden, err := uc.ordenRepo.ObtenerPorID(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, ordenID)
	}
	if orden.Estado != produccion.EstadoCompletado {
		return nil, fmt.Errorf("%w: solo se factura una orden completada (actual: %q)", domain.ErrConflictoEstado, orden.Estado)
	}
	if orden.Facturada {
		return nil, domain.ErrYaFacturada
	}

	cliente, err := uc.clienteRepo.ObtenerPorID(ctx, orden.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNoEncontrado, orden.ClienteID)
	}

	tipo, prefijo := entity.DocumentoFactura, produccion.PrefijoFactura
	if cliente.EsNatural() {
		tipo, prefijo = entity.DocumentoBoleta, produccion.PrefijoBoleta
	}
	subtotal, igv := entity.DesglosarIGV(orden.Total)

	now := time.Now()
	factura := &entity.Factura{
		ID:      uuid.New().String(),
		OrdenID: orden.ID,
		Tipo:    tipo,

		// Snapshot del cliente al momento de la emisión.
		ClienteNombre:    cliente.RazonSocial,
		ClienteDoc:       cliente.RucDni,
		ClienteDireccion: cliente.DireccionFiscal(),
		ClienteEmail:     cliente.Email,

		Subtotal:     subtotal,
		IGV:          igv,
		Total:        orden.Total,
		FechaEmision: now,
	}

	err = uc.txRunner.RunFacturacion(ctx, func(
		ordenRepo repository.OrdenRepository,
		facturaRepo repository.FacturaRepository,
		correlativoRepo repository.CorrelativoRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error {
		numero, err := correlativoRepo.Siguiente(ctx, prefijo)
		if err != nil {
			return err
		}
		factura.Numero = numero
		if err := facturaRepo.Crear(ctx, factura); err != nil {
			return err
		}
		if err := ordenRepo.MarcarFacturada(ctx, orden.ID); err != nil {
			return err
		}
		return auditoriaRepo.Registrar(ctx, &entity.Auditoria{
			ID:     uuid.New().String(),
			Accion: "FACTURA_GENERADA",
			Actor:  actor,
			Detalle: fmt.Sprintf("%s %s emitida para la orden %s por S/ %s",
				tipo, numero, orden.OTID, factura.Total.StringFixed(2)),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NuevaFacturaResponse(factura)
	return &resp, nil
}

// ObtenerPorOrden devuelve el comprobante emitido sobre una orden.
func (uc *EmitirUseCase) ObtenerPorOrden(ctx context.Context, ordenID string) (*dto.FacturaResponse, error) {
	factura, err := uc.facturaRepo.ObtenerPorOrden(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	if factura == nil {
		return nil, fmt.Errorf("%w: la orden %s no tiene comprobante", domain.ErrNoEncontrado, ordenID)
	}
	resp := dto.NuevaFacturaResponse(factura)
	return &resp, nil
}

// Listar devuelve los comprobantes paginados, más recientes primero.
func (uc *EmitirUseCase) Listar(ctx context.Context, limit, offset int) ([]dto.FacturaResponse, error) {
	list, err := uc.facturaRepo.Listar(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FacturaResponse, 0, len(list))
	for _, f := range list {
		items = append(items, dto.NuevaFacturaResponse(f))
	}
	return items, nil
}
