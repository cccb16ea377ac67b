package entity

import "time"

// Incidencia es un reporte de planta ligado a una orden (atasco de máquina,
// falla de insumos, merma anómala). No altera el flujo de la orden.
type Incidencia struct {
	ID           string
	OrdenID      string
	Tipo         string
	Detalle      string
	ReportadoPor string
	FechaReporte time.Time
}
