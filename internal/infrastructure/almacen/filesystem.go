// Package almacen guarda los archivos adjuntos de las órdenes (originales del
// cliente y pruebas de diseño) en el sistema de archivos local.
package almacen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/planta"
)

var _ planta.Almacen = (*Filesystem)(nil)

// Filesystem implementa planta.Almacen sobre un directorio local. Cada orden
// tiene su subdirectorio; el nombre en disco lleva un sufijo aleatorio para
// que dos versiones del mismo archivo nunca se pisen.
type Filesystem struct {
	dir string
}

// NewFilesystem construye el almacén sobre dir (se crea si no existe).
func NewFilesystem(dir string) (*Filesystem, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("almacen: crear directorio: %w", err)
	}
	return &Filesystem{dir: dir}, nil
}

// Guardar escribe el contenido y devuelve la ruta relativa como URL.
func (f *Filesystem) Guardar(_ context.Context, ordenID, nombre string, contenido []byte) (string, error) {
	// filepath.Base corta cualquier intento de escapar del directorio.
	nombre = filepath.Base(strings.TrimSpace(nombre))
	if nombre == "" || nombre == "." || nombre == string(filepath.Separator) {
		return "", fmt.Errorf("almacen: nombre de archivo inválido")
	}
	subdir := filepath.Join(f.dir, ordenID)
	if err := os.MkdirAll(subdir, 0o755); err != nil {
		return "", fmt.Errorf("almacen: crear directorio de la orden: %w", err)
	}
	ext := filepath.Ext(nombre)
	base := strings.TrimSuffix(nombre, ext)
	destino := filepath.Join(subdir, fmt.Sprintf("%s_%s%s", base, uuid.New().String()[:8], ext))
	if err := os.WriteFile(destino, contenido, 0o644); err != nil {
		return "", fmt.Errorf("almacen: escribir archivo: %w", err)
	}
	return destino, nil
}
