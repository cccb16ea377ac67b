package postgres

import (
	"context"
	"fmt"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

var _ repository.ArchivoRepository = (*ArchivoRepo)(nil)

// ArchivoRepo implementación del puerto ArchivoRepository sobre PostgreSQL.
type ArchivoRepo struct {
	q Querier
}

// NewArchivoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArchivoRepository(q Querier) *ArchivoRepo {
	return &ArchivoRepo{q: q}
}

// Crear persiste los metadatos del adjunto.
func (r *ArchivoRepo) Crear(ctx context.Context, archivo *entity.Archivo) error {
	query := `
		INSERT INTO archivos (id, orden_id, tipo_emisor, nombre_archivo, url_archivo, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query,
		archivo.ID, archivo.OrdenID, archivo.TipoEmisor, archivo.NombreArchivo,
		archivo.URLArchivo, archivo.Version, archivo.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert archivo: %w", err)
	}
	return nil
}

// ListarPorOrden devuelve los adjuntos de la orden en orden de carga.
func (r *ArchivoRepo) ListarPorOrden(ctx context.Context, ordenID string) ([]*entity.Archivo, error) {
	query := `
		SELECT id, orden_id, tipo_emisor, nombre_archivo, url_archivo, version, created_at
		FROM archivos WHERE orden_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, ordenID)
	if err != nil {
		return nil, fmt.Errorf("list archivos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Archivo
	for rows.Next() {
		var a entity.Archivo
		if err := rows.Scan(&a.ID, &a.OrdenID, &a.TipoEmisor, &a.NombreArchivo, &a.URLArchivo, &a.Version, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan archivo: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
