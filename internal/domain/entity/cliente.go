package entity

import (
	"strings"
	"time"
)

// Tipos de persona según el padrón tributario (Perú).
const (
	PersonaNatural  = "NATURAL"  // DNI de 8 dígitos, recibe Boleta
	PersonaJuridica = "JURIDICA" // RUC de 11 dígitos, recibe Factura
)

// Cliente representa a un sujeto tributario de la imprenta.
type Cliente struct {
	ID             string
	TipoPersona    string // NATURAL o JURIDICA
	RucDni         string
	RazonSocial    string
	NombreContacto string
	Email          string
	Telefono       string
	Direccion      string
	Departamento   string
	Provincia      string
	Distrito       string
	Ubigeo         string
	Estado         string // Activo / Inactivo
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EsNatural resuelve el tipo de persona. Cuando el flag no está presente se
// usa la longitud del documento como heurística secundaria (8 = DNI).
func (c *Cliente) EsNatural() bool {
	if c.TipoPersona != "" {
		return c.TipoPersona == PersonaNatural
	}
	return len(c.RucDni) == 8
}

// DireccionFiscal arma la dirección completa para el snapshot de facturación.
func (c *Cliente) DireccionFiscal() string {
	partes := make([]string, 0, 3)
	for _, p := range []string{c.Direccion, c.Distrito, c.Provincia} {
		if p != "" {
			partes = append(partes, p)
		}
	}
	return strings.ToUpper(strings.Join(partes, " - "))
}
