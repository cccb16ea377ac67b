package dto

import (
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
)

// CrearClienteRequest da de alta un cliente.
type CrearClienteRequest struct {
	TipoPersona  string `json:"tipo_persona"`
	RucDni       string `json:"ruc_dni"`
	RazonSocial  string `json:"razon_social"`
	Contacto     string `json:"contacto"`
	Telefono     string `json:"telefono"`
	Email        string `json:"email"`
	Direccion    string `json:"direccion"`
	Distrito     string `json:"distrito"`
	Provincia    string `json:"provincia"`
	Departamento string `json:"departamento"`
}

// ActualizarClienteRequest edita los datos de contacto y dirección.
type ActualizarClienteRequest struct {
	Contacto     string `json:"contacto"`
	Telefono     string `json:"telefono"`
	Email        string `json:"email"`
	Direccion    string `json:"direccion"`
	Distrito     string `json:"distrito"`
	Provincia    string `json:"provincia"`
	Departamento string `json:"departamento"`
}

// ClienteResponse es la vista de un cliente.
type ClienteResponse struct {
	ID           string `json:"id"`
	TipoPersona  string `json:"tipo_persona"`
	RucDni       string `json:"ruc_dni"`
	RazonSocial  string `json:"razon_social"`
	Contacto     string `json:"contacto,omitempty"`
	Telefono     string `json:"telefono,omitempty"`
	Email        string `json:"email,omitempty"`
	Direccion    string `json:"direccion,omitempty"`
	Distrito     string `json:"distrito,omitempty"`
	Provincia    string `json:"provincia,omitempty"`
	Departamento string `json:"departamento,omitempty"`
}

// NuevaClienteResponse arma la vista desde la entidad.
func NuevaClienteResponse(c *entity.Cliente) ClienteResponse {
	return ClienteResponse{
		ID:           c.ID,
		TipoPersona:  string(c.TipoPersona),
		RucDni:       c.RucDni,
		RazonSocial:  c.RazonSocial,
		Contacto:     c.NombreContacto,
		Telefono:     c.Telefono,
		Email:        c.Email,
		Direccion:    c.Direccion,
		Distrito:     c.Distrito,
		Provincia:    c.Provincia,
		Departamento: c.Departamento,
	}
}

// ConsultaDocumentoResponse es el resultado de la consulta DNI/RUC externa.
type ConsultaDocumentoResponse struct {
	TipoPersona string `json:"tipo_persona"`
	RucDni      string `json:"ruc_dni"`
	RazonSocial string `json:"razon_social"`
	Direccion   string `json:"direccion,omitempty"`
}

// RegistroRequest da de alta un usuario del sistema.
type RegistroRequest struct {
	Email    string `json:"email"`
	Nombre   string `json:"nombre"`
	Password string `json:"password"`
	Rol      string `json:"rol"`
}

// LoginRequest autentica por email y contraseña.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse devuelve el token de sesión y el perfil básico.
type LoginResponse struct {
	Token  string `json:"token"`
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Email  string `json:"email"`
	Rol    string `json:"rol"`
}
