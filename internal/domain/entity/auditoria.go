package entity

import "time"

// Auditoria es una entrada del registro de trazabilidad. El log es
// append-only: las entradas nunca se mutan ni se borran.
type Auditoria struct {
	ID        string
	Accion    string // etiqueta en mayúsculas, ej. CONVERSION_OT, FACTURA_GENERADA
	Actor     string // identidad explícita de quien ejecutó la acción
	Detalle   string
	CreatedAt time.Time
}
