package entity

import "time"

// Roles de usuario por área.
const (
	RolVentas     = "VENTAS"
	RolPreprensa  = "PREPRENSA"
	RolPrensa     = "PRENSA"
	RolPostprensa = "POSTPRENSA"
	RolAdmin      = "ADMIN"
)

// Usuario es un trabajador del sistema. La contraseña se guarda como hash
// bcrypt, nunca en claro.
type Usuario struct {
	ID           string
	Email        string
	Nombre       string
	PasswordHash string
	Rol          string
	Activo       bool
	CreatedAt    time.Time
}
