package dto

import (
	"time"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
)

// ReclamarRequest toma una orden de la cola del departamento.
type ReclamarRequest struct {
	OrdenID string `json:"orden_id"`
}

// MarcarPasoRequest marca un paso del checklist (índice basado en cero).
type MarcarPasoRequest struct {
	Paso int `json:"paso"`
}

// SubirPruebaRequest registra la prueba de diseño enviada al cliente.
type SubirPruebaRequest struct {
	NombreArchivo string `json:"nombre_archivo"`
	Comentario    string `json:"comentario"`
}

// AsignarMaquinaRequest fija la máquina antes de preparar la impresión.
type AsignarMaquinaRequest struct {
	Maquina string `json:"maquina"`
}

// FinalizarImpresionRequest cierra la tirada con sus métricas de papel.
type FinalizarImpresionRequest struct {
	ConsumoPapel     int `json:"consumo_papel"`
	DesperdicioPapel int `json:"desperdicio_papel"`
}

// ReportarIncidenciaRequest registra un problema de planta.
type ReportarIncidenciaRequest struct {
	Tipo        string `json:"tipo"`
	Descripcion string `json:"descripcion"`
}

// FaseResponse es la vista de una fase de producción.
type FaseResponse struct {
	OrdenID          string     `json:"orden_id"`
	AsignadoID       string     `json:"asignado_id,omitempty"`
	Estado           string     `json:"estado"`
	Checklist        []bool     `json:"checklist"`
	MaquinaAsignada  string     `json:"maquina_asignada,omitempty"`
	ConsumoPapel     int        `json:"consumo_papel,omitempty"`
	DesperdicioPapel int        `json:"desperdicio_papel,omitempty"`
	FechaAsignacion  *time.Time `json:"fecha_asignacion,omitempty"`
	FechaFin         *time.Time `json:"fecha_fin,omitempty"`
}

// NuevaFaseResponse arma la vista desde la entidad.
func NuevaFaseResponse(f *entity.Fase) FaseResponse {
	resp := FaseResponse{
		OrdenID:          f.OrdenID,
		Estado:           string(f.Estado),
		Checklist:        f.Checklist,
		MaquinaAsignada:  f.MaquinaAsignada,
		ConsumoPapel:     f.ConsumoPapel,
		DesperdicioPapel: f.DesperdicioPapel,
		FechaAsignacion:  f.FechaAsignacion,
		FechaFin:         f.FechaFin,
	}
	if f.AsignadoID != nil {
		resp.AsignadoID = *f.AsignadoID
	}
	return resp
}
