package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
)

// ItemRequest es una línea de la cotización.
type ItemRequest struct {
	Producto         string          `json:"producto"`
	Cantidad         int             `json:"cantidad"`
	Especificaciones string          `json:"especificaciones"`
	PrecioUnitario   decimal.Decimal `json:"precio_unitario"`
}

// CrearCotizacionRequest crea una orden en negociación.
type CrearCotizacionRequest struct {
	ClienteID string        `json:"cliente_id"`
	Items     []ItemRequest `json:"items"`
	Notas     string        `json:"notas"`
}

// ActualizarOrdenRequest reescribe ítems y notas mientras la orden sea editable.
type ActualizarOrdenRequest struct {
	Items []ItemRequest `json:"items"`
	Notas string        `json:"notas"`
}

// CerrarOrdenRequest rechaza o cancela una cotización con su motivo.
type CerrarOrdenRequest struct {
	Motivo string `json:"motivo"`
}

// ItemResponse es una línea de la orden en respuestas.
type ItemResponse struct {
	ID               string          `json:"id"`
	Producto         string          `json:"producto"`
	Cantidad         int             `json:"cantidad"`
	Especificaciones string          `json:"especificaciones"`
	PrecioUnitario   decimal.Decimal `json:"precio_unitario"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// OrdenResponse es la vista completa de una orden.
type OrdenResponse struct {
	ID            string          `json:"id"`
	Codigo        string          `json:"codigo"`
	OTID          string          `json:"ot_id"`
	ClienteID     string          `json:"cliente_id"`
	ClienteNombre string          `json:"cliente_nombre"`
	Estado        string          `json:"estado"`
	Facturada     bool            `json:"facturada"`
	Items         []ItemResponse  `json:"items"`
	Total         decimal.Decimal `json:"total"`
	Notas         string          `json:"notas,omitempty"`
	FechaCreacion time.Time       `json:"fecha_creacion"`
}

// NuevaOrdenResponse arma la vista desde la entidad.
func NuevaOrdenResponse(o *entity.Orden) OrdenResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemResponse{
			ID:               it.ID,
			Producto:         it.Producto,
			Cantidad:         it.Cantidad,
			Especificaciones: it.Especificaciones,
			PrecioUnitario:   it.PrecioUnitario,
			Subtotal:         it.Subtotal,
		})
	}
	return OrdenResponse{
		ID:            o.ID,
		Codigo:        o.Codigo,
		OTID:          o.OTID,
		ClienteID:     o.ClienteID,
		ClienteNombre: o.ClienteNombre,
		Estado:        string(o.Estado),
		Facturada:     o.Facturada,
		Items:         items,
		Total:         o.Total,
		Notas:         o.Notas,
		FechaCreacion: o.FechaCreacion,
	}
}
