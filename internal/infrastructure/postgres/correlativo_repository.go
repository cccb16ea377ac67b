package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

var _ repository.CorrelativoRepository = (*CorrelativoRepo)(nil)

// CorrelativoRepo generador atómico de códigos secuenciales sobre PostgreSQL.
type CorrelativoRepo struct {
	q Querier
}

// NewCorrelativoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCorrelativoRepository(q Querier) *CorrelativoRepo {
	return &CorrelativoRepo{q: q}
}

// Siguiente incrementa y devuelve el correlativo del (tipo, año) en un único
// statement. El upsert con RETURNING hace que el incremento-y-lectura sea
// atómico: bajo concurrencia no hay duplicados ni huecos, y el primer código
// de cada año arranca en 1.
func (r *CorrelativoRepo) Siguiente(ctx context.Context, tipo string) (string, error) {
	anio := time.Now().Year()
	query := `
		INSERT INTO correlativos (tipo, anio, ultimo)
		VALUES ($1, $2, 1)
		ON CONFLICT (tipo, anio) DO UPDATE
		SET ultimo = correlativos.ultimo + 1
		RETURNING ultimo`
	var ultimo int64
	if err := r.q.QueryRow(ctx, query, tipo, anio).Scan(&ultimo); err != nil {
		return "", fmt.Errorf("siguiente correlativo %s: %w", tipo, err)
	}
	return produccion.FormatearCodigo(tipo, anio, ultimo), nil
}
