package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los rechazos de reglas de negocio son valores de error, nunca pánicos:
// el caller los distingue con errors.Is y decide cómo reaccionar.
var (
	ErrNoEncontrado         = errors.New("recurso no encontrado")
	ErrEntradaInvalida      = errors.New("entrada inválida")
	ErrDuplicado            = errors.New("recurso duplicado")
	ErrConflictoEstado      = errors.New("conflicto con el estado actual")
	ErrTransicionInvalida   = errors.New("transición de estado no permitida")
	ErrPasoFueraDeOrden     = errors.New("paso del checklist fuera de orden")
	ErrTareaYaTomada        = errors.New("la tarea ya fue tomada por otro operador")
	ErrYaFacturada          = errors.New("la orden ya fue facturada")
	ErrEdicionBloqueada     = errors.New("la orden ya no admite edición")
	ErrNoAutorizado         = errors.New("no autorizado")
	ErrUsuarioNoEncontrado  = errors.New("usuario no encontrado")
	ErrCredencialesInvalid  = errors.New("credenciales inválidas")
	ErrConsultaNoDisponible = errors.New("servicio de consulta de documentos no disponible")
)
