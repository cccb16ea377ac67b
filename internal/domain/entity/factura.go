package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de comprobante fiscal (SUNAT).
const (
	DocumentoFactura = "FACTURA" // persona jurídica, prefijo FAC
	DocumentoBoleta  = "BOLETA"  // persona natural, prefijo BOL
)

// TasaIGV es la tasa fija del impuesto general a las ventas.
var TasaIGV = decimal.NewFromFloat(0.18)

// Factura es el documento fiscal emitido sobre una orden completada.
// Es inmutable una vez creada y existe a lo sumo una por orden
// (constraint único sobre orden_id en el almacén).
//
// Los datos del cliente son un snapshot al momento de la emisión: ediciones
// posteriores del cliente no alteran documentos ya emitidos.
type Factura struct {
	ID      string
	OrdenID string
	Tipo    string // FACTURA o BOLETA
	Numero  string // correlativo FAC-/BOL-AAAA-XXXXXXXX, único por tipo

	ClienteNombre    string
	ClienteDoc       string
	ClienteDireccion string
	ClienteEmail     string

	Subtotal decimal.Decimal
	IGV      decimal.Decimal
	Total    decimal.Decimal

	FechaEmision time.Time
}

// DesglosarIGV calcula el desglose monetario desde el total de la orden:
// subtotal = total / (1 + tasa), IGV = total − subtotal. Siempre se cumple
// subtotal + IGV = total.
func DesglosarIGV(total decimal.Decimal) (subtotal, igv decimal.Decimal) {
	subtotal = total.Div(decimal.NewFromInt(1).Add(TasaIGV)).Round(2)
	igv = total.Sub(subtotal)
	return subtotal, igv
}
