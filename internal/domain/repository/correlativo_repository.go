package repository

import "context"

// CorrelativoRepository define el generador de códigos secuenciales por tipo
// de documento (COT, OT, FAC, BOL).
//
// El contrato exige que el incremento-y-lectura sea una sola operación
// atómica en el almacén: bajo llamadas concurrentes los códigos de un mismo
// (tipo, año) son estrictamente crecientes, sin duplicados ni huecos.
type CorrelativoRepository interface {
	Siguiente(ctx context.Context, tipo string) (string, error)
}
