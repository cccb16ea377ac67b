package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
)

// Orden representa un trabajo de imprenta de punta a punta: nace como
// cotización (código COT permanente) y, al convertirse a producción, recibe
// además un código OT. El campo Estado es la única fuente de verdad sobre
// qué departamento es dueño del trabajo.
type Orden struct {
	ID     string
	Codigo string // COT-AAAA-XXXXXXXX, asignado al crear, inmutable
	OTID   string // OT-AAAA-XXXXXXXX; "PENDIENTE" hasta la conversión

	ClienteID     string
	ClienteNombre string // denormalizado en lecturas, no se persiste

	Estado    produccion.Estado
	Facturada bool // derivado de la existencia de una factura; nunca regresa a false

	Items []OrdenItem
	Total decimal.Decimal
	Notas string

	FechaCreacion         time.Time
	FechaAsignacionGlobal *time.Time // marca de entrada a producción
	UpdatedAt             time.Time
}

// OrdenItem es una línea de la orden. El subtotal se calcula siempre en el
// servidor como cantidad × precio unitario.
type OrdenItem struct {
	ID               string
	OrdenID          string
	Producto         string
	Cantidad         int
	Especificaciones string
	PrecioUnitario   decimal.Decimal
	Subtotal         decimal.Decimal
}

// EsOT indica si la orden ya tiene código de orden de trabajo asignado.
func (o *Orden) EsOT() bool {
	return o.OTID != "" && o.OTID != produccion.OTPendiente
}

// PuedeEditarse es el candado de edición transversal: los ítems, el total y
// el cliente solo se tocan mientras la cotización sigue en negociación y no
// fue facturada. Producción, rechazo o facturación bloquean toda mutación
// comercial.
func (o *Orden) PuedeEditarse() bool {
	return o.Estado == produccion.EstadoEnNegociacion && !o.Facturada
}

// CalcularTotal recalcula los subtotales de cada ítem y el total de la orden.
func (o *Orden) CalcularTotal() {
	total := decimal.Zero
	for i := range o.Items {
		item := &o.Items[i]
		item.Subtotal = item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		total = total.Add(item.Subtotal)
	}
	o.Total = total
}
