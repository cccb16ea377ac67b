package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDesglosarIGV_IdentidadMonetaria(t *testing.T) {
	// La identidad subtotal + IGV = total debe cumplirse exacta para cualquier
	// total, incluidos los que no dividen limpio entre 1.18.
	totales := []string{"118.00", "100.00", "0.01", "999999.99", "356.78", "1.18", "0.03"}
	for _, s := range totales {
		total := decimal.RequireFromString(s)
		subtotal, igv := DesglosarIGV(total)

		assert.Truef(t, subtotal.Add(igv).Equal(total),
			"subtotal %s + IGV %s debe sumar exactamente %s", subtotal, igv, total)
		assert.True(t, subtotal.Exponent() >= -2, "el subtotal se redondea a 2 decimales")
	}
}

func TestDesglosarIGV_ValoresConocidos(t *testing.T) {
	subtotal, igv := DesglosarIGV(decimal.RequireFromString("118.00"))
	assert.True(t, subtotal.Equal(decimal.RequireFromString("100.00")), "subtotal de 118 es 100")
	assert.True(t, igv.Equal(decimal.RequireFromString("18.00")), "IGV de 118 es 18")
}
