package entity

import "time"

// Emisores de archivos adjuntos a una orden.
const (
	EmisorCliente   = "CLIENTE"
	EmisorDisenador = "DISENADOR"
)

// Archivo es un adjunto de la orden (original del cliente o prueba de
// diseño). El contenido vive en el almacén de objetos; aquí solo la URL.
type Archivo struct {
	ID            string
	OrdenID       string
	TipoEmisor    string
	NombreArchivo string
	URLArchivo    string
	Version       int
	CreatedAt     time.Time
}
