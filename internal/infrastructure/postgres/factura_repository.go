package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

var _ repository.FacturaRepository = (*FacturaRepo)(nil)

// FacturaRepo implementación del puerto FacturaRepository sobre PostgreSQL.
type FacturaRepo struct {
	q Querier
}

// NewFacturaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFacturaRepository(q Querier) *FacturaRepo {
	return &FacturaRepo{q: q}
}

const facturaColumns = `
	id, orden_id, tipo, numero,
	cliente_nombre, cliente_doc, COALESCE(cliente_direccion, ''), COALESCE(cliente_email, ''),
	subtotal, igv, total, fecha_emision`

// Crear inserta el comprobante. El constraint único sobre orden_id es el que
// garantiza la idempotencia de la emisión: la segunda inserción concurrente
// recibe ErrYaFacturada, sin ventana de carrera.
func (r *FacturaRepo) Crear(ctx context.Context, factura *entity.Factura) error {
	query := `
		INSERT INTO facturas (id, orden_id, tipo, numero, cliente_nombre, cliente_doc, cliente_direccion, cliente_email, subtotal, igv, total, fecha_emision)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		factura.ID, factura.OrdenID, factura.Tipo, factura.Numero,
		factura.ClienteNombre, factura.ClienteDoc, nullIfEmpty(factura.ClienteDireccion), nullIfEmpty(factura.ClienteEmail),
		factura.Subtotal, factura.IGV, factura.Total, factura.FechaEmision,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrYaFacturada
		}
		return fmt.Errorf("insert factura: %w", err)
	}
	return nil
}

// ObtenerPorOrden devuelve el comprobante de la orden o nil si no existe.
func (r *FacturaRepo) ObtenerPorOrden(ctx context.Context, ordenID string) (*entity.Factura, error) {
	return r.obtener(ctx, `WHERE orden_id = $1`, ordenID)
}

// ObtenerPorID devuelve el comprobante o nil si no existe.
func (r *FacturaRepo) ObtenerPorID(ctx context.Context, id string) (*entity.Factura, error) {
	return r.obtener(ctx, `WHERE id = $1`, id)
}

func (r *FacturaRepo) obtener(ctx context.Context, where, arg string) (*entity.Factura, error) {
	query := `SELECT ` + facturaColumns + ` FROM facturas ` + where
	var f entity.Factura
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&f.ID, &f.OrdenID, &f.Tipo, &f.Numero,
		&f.ClienteNombre, &f.ClienteDoc, &f.ClienteDireccion, &f.ClienteEmail,
		&f.Subtotal, &f.IGV, &f.Total, &f.FechaEmision,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura: %w", err)
	}
	return &f, nil
}

// Listar devuelve los comprobantes paginados, más recientes primero.
func (r *FacturaRepo) Listar(ctx context.Context, limit, offset int) ([]*entity.Factura, error) {
	query := `
		SELECT ` + facturaColumns + `
		FROM facturas
		ORDER BY fecha_emision DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Factura
	for rows.Next() {
		var f entity.Factura
		if err := rows.Scan(
			&f.ID, &f.OrdenID, &f.Tipo, &f.Numero,
			&f.ClienteNombre, &f.ClienteDoc, &f.ClienteDireccion, &f.ClienteEmail,
			&f.Subtotal, &f.IGV, &f.Total, &f.FechaEmision,
		); err != nil {
			return nil, fmt.Errorf("scan factura: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
