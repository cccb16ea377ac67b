package produccion

import "fmt"

// Prefijos de los correlativos por tipo de documento.
const (
	PrefijoCotizacion = "COT"
	PrefijoOT         = "OT"
	PrefijoFactura    = "FAC"
	PrefijoBoleta     = "BOL"
)

// FormatearCodigo arma el código correlativo legible por humanos:
// <PREFIJO>-<AÑO>-<secuencia con ceros>, ej. "OT-2025-00000042".
// El número lo entrega el generador atómico de secuencias; aquí solo se
// formatea para que todas las implementaciones produzcan el mismo texto.
func FormatearCodigo(prefijo string, anio int, numero int64) string {
	return fmt.Sprintf("%s-%d-%08d", prefijo, anio, numero)
}
