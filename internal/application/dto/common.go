package dto

// RespuestaError es el cuerpo estándar de error de la API.
type RespuestaError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespuestaMensaje es el cuerpo estándar de confirmación simple.
type RespuestaMensaje struct {
	Mensaje string `json:"mensaje"`
}

// Paginacion acota listados.
type Paginacion struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalizar aplica los valores por defecto del listado.
func (p *Paginacion) Normalizar() {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
