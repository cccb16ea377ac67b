package dto

import (
	"time"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
)

// EntradaHistorialResponse es un evento de la línea de tiempo de una orden.
type EntradaHistorialResponse struct {
	Accion  string    `json:"accion"`
	Actor   string    `json:"actor"`
	Detalle string    `json:"detalle"`
	Fecha   time.Time `json:"fecha"`
}

// HistorialResponse es la trazabilidad completa de una orden, del más antiguo
// al más reciente.
type HistorialResponse struct {
	OrdenID string                     `json:"orden_id"`
	Codigo  string                     `json:"codigo"`
	OTID    string                     `json:"ot_id"`
	Estado  string                     `json:"estado"`
	Eventos []EntradaHistorialResponse `json:"eventos"`
}

// NuevaEntradaHistorial arma el evento desde la entidad de auditoría.
func NuevaEntradaHistorial(a *entity.Auditoria) EntradaHistorialResponse {
	return EntradaHistorialResponse{
		Accion:  a.Accion,
		Actor:   a.Actor,
		Detalle: a.Detalle,
		Fecha:   a.CreatedAt,
	}
}
