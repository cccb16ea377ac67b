package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
)

// EmitirDocumentoRequest emite el comprobante de una orden completada.
type EmitirDocumentoRequest struct {
	OrdenID string `json:"orden_id"`
}

// FacturaResponse es la vista del comprobante emitido.
type FacturaResponse struct {
	ID            string          `json:"id"`
	Codigo        string          `json:"codigo"`
	TipoDocumento string          `json:"tipo_documento"`
	OrdenID       string          `json:"orden_id"`
	ClienteNombre string          `json:"cliente_nombre"`
	ClienteRucDni string          `json:"cliente_ruc_dni"`
	Direccion     string          `json:"direccion,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	IGV           decimal.Decimal `json:"igv"`
	Total         decimal.Decimal `json:"total"`
	FechaEmision  time.Time       `json:"fecha_emision"`
}

// NuevaFacturaResponse arma la vista desde la entidad.
func NuevaFacturaResponse(f *entity.Factura) FacturaResponse {
	return FacturaResponse{
		ID:            f.ID,
		Codigo:        f.Numero,
		TipoDocumento: f.Tipo,
		OrdenID:       f.OrdenID,
		ClienteNombre: f.ClienteNombre,
		ClienteRucDni: f.ClienteDoc,
		Direccion:     f.ClienteDireccion,
		Subtotal:      f.Subtotal,
		IGV:           f.IGV,
		Total:         f.Total,
		FechaEmision:  f.FechaEmision,
	}
}
