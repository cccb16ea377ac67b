// Package produccion contiene las reglas puras del flujo productivo de la
// imprenta: la máquina de estados de la orden, los departamentos y el
// checklist secuencial de cada fase. No depende de almacenamiento ni de HTTP.
package produccion

// Estado representa el estado global de una orden. Es un conjunto cerrado:
// cualquier valor fuera de esta lista es inválido y las transiciones se
// resuelven con un switch exhaustivo en PuedeTransicionarA.
type Estado string

const (
	// Fase comercial (cotización).
	EstadoEnNegociacion Estado = "En Negociación"
	EstadoRechazada     Estado = "Rechazada"
	EstadoCancelada     Estado = "Cancelada"

	// Conversión a Orden de Trabajo.
	EstadoOrdenCreada Estado = "Orden creada"

	// Pre-prensa.
	EstadoEnDiseno            Estado = "En diseño"
	EstadoEnAprobacionCliente Estado = "En Aprobación de Cliente"
	EstadoDisenoAprobado      Estado = "Diseño Aprobado"

	// Prensa.
	EstadoEnPrensa        Estado = "En prensa"
	EstadoAsignadaAPrensa Estado = "Asignada a Prensa"
	EstadoEnPreparacion   Estado = "En Preparación"
	EstadoImprimiendo     Estado = "Imprimiendo"

	// Post-prensa.
	EstadoEnPostPrensa     Estado = "En Post-Prensa"
	EstadoEnAcabados       Estado = "En Acabados"
	EstadoEnControlCalidad Estado = "En Control de Calidad"

	// Terminal.
	EstadoCompletado Estado = "Completado"
)

// OTPendiente es el valor centinela de ot_id mientras la cotización no se
// convierte en orden de trabajo.
const OTPendiente = "PENDIENTE"

// EsValido indica si el valor pertenece al conjunto cerrado de estados.
func (e Estado) EsValido() bool {
	switch e {
	case EstadoEnNegociacion, EstadoRechazada, EstadoCancelada,
		EstadoOrdenCreada,
		EstadoEnDiseno, EstadoEnAprobacionCliente, EstadoDisenoAprobado,
		EstadoEnPrensa, EstadoAsignadaAPrensa, EstadoEnPreparacion, EstadoImprimiendo,
		EstadoEnPostPrensa, EstadoEnAcabados, EstadoEnControlCalidad,
		EstadoCompletado:
		return true
	}
	return false
}

// EsTerminal indica si el estado no admite ninguna transición de salida.
func (e Estado) EsTerminal() bool {
	return e == EstadoCompletado || e == EstadoRechazada || e == EstadoCancelada
}

// EnProduccion indica si la orden ya entró al flujo productivo (pasó la
// conversión a OT). Las órdenes en producción no admiten edición comercial.
func (e Estado) EnProduccion() bool {
	switch e {
	case EstadoOrdenCreada,
		EstadoEnDiseno, EstadoEnAprobacionCliente, EstadoDisenoAprobado,
		EstadoEnPrensa, EstadoAsignadaAPrensa, EstadoEnPreparacion, EstadoImprimiendo,
		EstadoEnPostPrensa, EstadoEnAcabados, EstadoEnControlCalidad,
		EstadoCompletado:
		return true
	}
	return false
}

// PuedeTransicionarA valida la transición e → destino según el flujo:
//
//	En Negociación ─┬→ Rechazada / Cancelada (terminal)
//	                └→ Orden creada → En diseño → En Aprobación de Cliente
//	                   → Diseño Aprobado → En prensa → Asignada a Prensa
//	                   → En Preparación → Imprimiendo → En Post-Prensa
//	                   → En Acabados → En Control de Calidad → Completado
//
// Completado es irreversible: ninguna transición sale de él (la facturación
// no cambia el estado).
func (e Estado) PuedeTransicionarA(destino Estado) bool {
	switch e {
	case EstadoEnNegociacion:
		return destino == EstadoOrdenCreada || destino == EstadoRechazada || destino == EstadoCancelada
	case EstadoOrdenCreada:
		return destino == EstadoEnDiseno
	case EstadoEnDiseno:
		return destino == EstadoEnAprobacionCliente
	case EstadoEnAprobacionCliente:
		return destino == EstadoDisenoAprobado
	case EstadoDisenoAprobado:
		return destino == EstadoEnPrensa
	case EstadoEnPrensa:
		return destino == EstadoAsignadaAPrensa
	case EstadoAsignadaAPrensa:
		return destino == EstadoEnPreparacion
	case EstadoEnPreparacion:
		return destino == EstadoImprimiendo
	case EstadoImprimiendo:
		return destino == EstadoEnPostPrensa
	case EstadoEnPostPrensa:
		return destino == EstadoEnAcabados
	case EstadoEnAcabados:
		return destino == EstadoEnControlCalidad
	case EstadoEnControlCalidad:
		return destino == EstadoCompletado
	case EstadoRechazada, EstadoCancelada, EstadoCompletado:
		return false
	}
	return false
}

// EstadoFase es el sub-estado local de una fase de producción.
type EstadoFase string

const (
	FasePendiente        EstadoFase = "Pendiente"
	FaseEnDiseno         EstadoFase = "En diseño"
	FaseEnAprobacion     EstadoFase = "En Aprobación"
	FaseAsignada         EstadoFase = "Asignada a Prensa"
	FaseEnPreparacion    EstadoFase = "En Preparación"
	FaseImprimiendo      EstadoFase = "Imprimiendo"
	FaseEnAcabados       EstadoFase = "En Acabados"
	FaseEnControlCalidad EstadoFase = "En Control de Calidad"
	FaseCompletada       EstadoFase = "Completado"
)

// Departamento identifica cada área productiva. Cada una tiene su propia
// tabla de fase, su cola de tareas y su checklist.
type Departamento string

const (
	DepartamentoPreprensa  Departamento = "preprensa"
	DepartamentoPrensa     Departamento = "prensa"
	DepartamentoPostprensa Departamento = "postprensa"
)

// EsValido indica si el departamento pertenece al conjunto cerrado.
func (d Departamento) EsValido() bool {
	switch d {
	case DepartamentoPreprensa, DepartamentoPrensa, DepartamentoPostprensa:
		return true
	}
	return false
}

// EstadoCola es el estado global en el que las órdenes esperan sin dueño
// en la cola de este departamento.
func (d Departamento) EstadoCola() Estado {
	switch d {
	case DepartamentoPreprensa:
		return EstadoOrdenCreada
	case DepartamentoPrensa:
		return EstadoEnPrensa
	case DepartamentoPostprensa:
		return EstadoEnPostPrensa
	}
	return ""
}

// EstadoAlReclamar es el par (estado global, sub-estado de fase) que toma la
// orden cuando un trabajador reclama la tarea del departamento.
func (d Departamento) EstadoAlReclamar() (Estado, EstadoFase) {
	switch d {
	case DepartamentoPreprensa:
		return EstadoEnDiseno, FaseEnDiseno
	case DepartamentoPrensa:
		return EstadoAsignadaAPrensa, FaseAsignada
	case DepartamentoPostprensa:
		return EstadoEnAcabados, FaseEnAcabados
	}
	return "", ""
}
