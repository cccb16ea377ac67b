package produccion

import (
	"fmt"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
)

// MaxConsumoPapel es el tope de pliegos aceptado en una sola tirada. Un valor
// por encima es casi seguro un error de digitación.
const MaxConsumoPapel = 1_000_000

// ValidarMetricasPapel valida las métricas de cierre de impresión: el consumo
// debe ser positivo y acotado, y el desperdicio no negativo y estrictamente
// menor que el consumo.
func ValidarMetricasPapel(consumo, desperdicio int) error {
	if consumo <= 0 {
		return fmt.Errorf("%w: el consumo de papel debe ser mayor a cero", domain.ErrEntradaInvalida)
	}
	if consumo > MaxConsumoPapel {
		return fmt.Errorf("%w: consumo de papel fuera de rango (máx %d pliegos)", domain.ErrEntradaInvalida, MaxConsumoPapel)
	}
	if desperdicio < 0 {
		return fmt.Errorf("%w: el desperdicio no puede ser negativo", domain.ErrEntradaInvalida)
	}
	if desperdicio >= consumo {
		return fmt.Errorf("%w: el desperdicio (%d) debe ser menor que el consumo (%d)", domain.ErrEntradaInvalida, desperdicio, consumo)
	}
	return nil
}
