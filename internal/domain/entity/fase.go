package entity

import (
	"time"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
)

// Fase es el sub-registro departamental de una orden (pre-prensa, prensa o
// post-prensa). Existe a lo sumo una fase por orden y departamento; se crea
// al entregar el trabajo al área (sin dueño) y nunca se destruye: queda como
// registro histórico.
//
// Las tres tablas de fase comparten esta forma normalizada; los campos que
// un departamento no usa quedan en cero. AsignadoID en nil significa que la
// tarea sigue libre en la cola.
type Fase struct {
	ID         string
	OrdenID    string
	AsignadoID *string
	Estado     produccion.EstadoFase

	// Checklist ordenado por dependencia (nil para prensa).
	Checklist []bool

	// Métricas de prensa, registradas solo al cierre de la fase.
	MaquinaAsignada  string
	ConsumoPapel     int
	DesperdicioPapel int

	FechaAsignacion *time.Time
	// FechaInicio marca el arranque del trabajo propio del área:
	// diseño en pre-prensa, preparación en prensa, acabados en post-prensa.
	FechaInicio          *time.Time
	FechaEnvioAprobacion *time.Time // pre-prensa: prueba enviada al cliente
	FechaInicioImpresion *time.Time // prensa
	FechaInicioCalidad   *time.Time // post-prensa: pase a control de calidad
	FechaFin             *time.Time // cierre de la fase
}

// Reclamada indica si la fase ya tiene dueño.
func (f *Fase) Reclamada() bool {
	return f != nil && f.AsignadoID != nil
}

// EsDe indica si el trabajador es el dueño actual de la fase.
func (f *Fase) EsDe(trabajadorID string) bool {
	return f != nil && f.AsignadoID != nil && *f.AsignadoID == trabajadorID
}
