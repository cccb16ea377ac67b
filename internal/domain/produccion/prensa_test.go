package produccion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
)

func TestValidarMetricasPapel(t *testing.T) {
	casos := []struct {
		nombre      string
		consumo     int
		desperdicio int
		ok          bool
	}{
		{"tirada normal", 5000, 120, true},
		{"sin desperdicio", 100, 0, true},
		{"consumo en el tope", MaxConsumoPapel, 10, true},
		{"consumo cero", 0, 0, false},
		{"consumo negativo", -5, 0, false},
		{"consumo sobre el tope", MaxConsumoPapel + 1, 0, false},
		{"desperdicio negativo", 100, -1, false},
		{"desperdicio igual al consumo", 100, 100, false},
		{"desperdicio mayor al consumo", 100, 150, false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			err := ValidarMetricasPapel(c.consumo, c.desperdicio)
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
			}
		})
	}
}

func TestFormatearCodigo(t *testing.T) {
	assert.Equal(t, "OT-2025-00000042", FormatearCodigo(PrefijoOT, 2025, 42))
	assert.Equal(t, "COT-2026-00000001", FormatearCodigo(PrefijoCotizacion, 2026, 1))
	assert.Equal(t, "FAC-2026-12345678", FormatearCodigo(PrefijoFactura, 2026, 12345678))
	// La secuencia puede desbordar los 8 dígitos sin truncarse.
	assert.Equal(t, "BOL-2026-123456789", FormatearCodigo(PrefijoBoleta, 2026, 123456789))
}
