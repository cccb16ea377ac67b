package produccion

import (
	"fmt"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
)

// PasoDef describe un paso del checklist de un departamento. Los pasos están
// ordenados por dependencia declarada: el paso k exige que todos los
// anteriores ya estén marcados. Algunos pasos son "compuerta": al completarse
// disparan además un cambio de estado global y/o de sub-estado de fase.
type PasoDef struct {
	Nombre string
	// RequiereEstado exige un estado global concreto antes de poder marcar el
	// paso ("" = sin requisito). Ej.: las placas solo con diseño aprobado.
	RequiereEstado Estado
	// AlCompletar / AlCompletarFase son el efecto compuerta ("" = sin cambio).
	AlCompletar     Estado
	AlCompletarFase EstadoFase
}

// Índices con nombre del checklist de pre-prensa.
const (
	PasoDiagramacion    = 0
	PasoRevisionTecnica = 1
	PasoPruebaCliente   = 2
	PasoPlacas          = 3
)

// Índices con nombre del checklist de post-prensa.
const (
	PasoCorte       = 0
	PasoEngrapado   = 1
	PasoEmpaquetado = 2
)

var pasosPreprensa = []PasoDef{
	{Nombre: "Diagramación y arte final"},
	{Nombre: "Revisión técnica de archivos"},
	{Nombre: "Prueba digital enviada al cliente", AlCompletar: EstadoEnAprobacionCliente, AlCompletarFase: FaseEnAprobacion},
	{Nombre: "Generación de placas CTP", RequiereEstado: EstadoDisenoAprobado},
}

var pasosPostprensa = []PasoDef{
	{Nombre: "Corte"},
	{Nombre: "Engrapado / encuadernación"},
	{Nombre: "Empaquetado", AlCompletar: EstadoEnControlCalidad, AlCompletarFase: FaseEnControlCalidad},
}

// Pasos devuelve la definición ordenada del checklist del departamento.
// Prensa no usa checklist: su avance se controla por sub-estados
// (Preparación → Impresión).
func (d Departamento) Pasos() []PasoDef {
	switch d {
	case DepartamentoPreprensa:
		return pasosPreprensa
	case DepartamentoPostprensa:
		return pasosPostprensa
	}
	return nil
}

// ChecklistVacio devuelve el checklist inicial del departamento, con todos
// los pasos sin marcar.
func (d Departamento) ChecklistVacio() []bool {
	return make([]bool, len(d.Pasos()))
}

// ChecklistCompleto indica si todos los pasos del checklist están marcados.
func ChecklistCompleto(def []PasoDef, actual []bool) bool {
	if len(actual) < len(def) {
		return false
	}
	for i := range def {
		if !actual[i] {
			return false
		}
	}
	return true
}

// Evaluar decide si el paso solicitado puede marcarse sobre el checklist
// actual y, de permitirse, devuelve el checklist resultante junto con la
// definición del paso (para que el caller aplique el efecto compuerta).
//
// Es una función pura: no toca almacenamiento y siempre produce un checklist
// nuevo, nunca muta el recibido. El caller debe releer el checklist
// autoritativo del almacén inmediatamente antes de llamar, para que un
// cliente desactualizado no pueda saltarse la regla de dependencia.
func Evaluar(def []PasoDef, actual []bool, paso int) ([]bool, PasoDef, error) {
	if paso < 0 || paso >= len(def) {
		return nil, PasoDef{}, fmt.Errorf("%w: paso %d inexistente", domain.ErrEntradaInvalida, paso)
	}
	for i := 0; i < paso; i++ {
		if i >= len(actual) || !actual[i] {
			return nil, PasoDef{}, fmt.Errorf("%w: debe completar %q (paso %d) antes de %q",
				domain.ErrPasoFueraDeOrden, def[i].Nombre, i+1, def[paso].Nombre)
		}
	}
	nuevo := make([]bool, len(def))
	copy(nuevo, actual)
	nuevo[paso] = true
	return nuevo, def[paso], nil
}
