package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

var _ repository.OrdenRepository = (*OrdenRepo)(nil)

// OrdenRepo implementación del puerto OrdenRepository sobre PostgreSQL (usable con pool o tx).
type OrdenRepo struct {
	q Querier
}

// NewOrdenRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrdenRepository(q Querier) *OrdenRepo {
	return &OrdenRepo{q: q}
}

const ordenColumns = `
	o.id, o.codigo, o.ot_id, o.cliente_id, COALESCE(c.razon_social, ''),
	o.estado, o.facturada, o.total, o.notas,
	o.fecha_creacion, o.fecha_asignacion_global, o.updated_at`

// Crear persiste la cabecera y sus ítems.
func (r *OrdenRepo) Crear(ctx context.Context, orden *entity.Orden) error {
	query := `
		INSERT INTO ordenes (id, codigo, ot_id, cliente_id, estado, facturada, total, notas, fecha_creacion, fecha_asignacion_global, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		orden.ID, orden.Codigo, orden.OTID, orden.ClienteID, string(orden.Estado),
		orden.Facturada, orden.Total, orden.Notas,
		orden.FechaCreacion, orden.FechaAsignacionGlobal, orden.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert orden: %w", err)
	}
	return r.insertItems(ctx, orden)
}

// Actualizar reescribe cabecera e ítems.
func (r *OrdenRepo) Actualizar(ctx context.Context, orden *entity.Orden) error {
	query := `
		UPDATE ordenes
		SET cliente_id = $2, total = $3, notas = $4, updated_at = $5
		WHERE id = $1`
	if _, err := r.q.Exec(ctx, query,
		orden.ID, orden.ClienteID, orden.Total, orden.Notas, orden.UpdatedAt,
	); err != nil {
		return fmt.Errorf("update orden: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM orden_items WHERE orden_id = $1`, orden.ID); err != nil {
		return fmt.Errorf("delete orden items: %w", err)
	}
	return r.insertItems(ctx, orden)
}

func (r *OrdenRepo) insertItems(ctx context.Context, orden *entity.Orden) error {
	query := `
		INSERT INTO orden_items (id, orden_id, producto, cantidad, especificaciones, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, it := range orden.Items {
		if _, err := r.q.Exec(ctx, query,
			it.ID, it.OrdenID, it.Producto, it.Cantidad, it.Especificaciones, it.PrecioUnitario, it.Subtotal,
		); err != nil {
			return fmt.Errorf("insert orden item: %w", err)
		}
	}
	return nil
}

// ObtenerPorID obtiene la orden con ítems y nombre de cliente, o nil si no existe.
func (r *OrdenRepo) ObtenerPorID(ctx context.Context, id string) (*entity.Orden, error) {
	return r.obtener(ctx, `WHERE o.id = $1`, id)
}

// BuscarPorCodigo localiza una orden por id, código COT o código OT.
func (r *OrdenRepo) BuscarPorCodigo(ctx context.Context, codigo string) (*entity.Orden, error) {
	return r.obtener(ctx, `WHERE o.id = $1 OR o.codigo = $1 OR o.ot_id = $1`, codigo)
}

func (r *OrdenRepo) obtener(ctx context.Context, where string, arg any) (*entity.Orden, error) {
	query := `
		SELECT ` + ordenColumns + `
		FROM ordenes o
		LEFT JOIN clientes c ON c.id = o.cliente_id
		` + where
	var o entity.Orden
	var estado string
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&o.ID, &o.Codigo, &o.OTID, &o.ClienteID, &o.ClienteNombre,
		&estado, &o.Facturada, &o.Total, &o.Notas,
		&o.FechaCreacion, &o.FechaAsignacionGlobal, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden: %w", err)
	}
	o.Estado = produccion.Estado(estado)
	items, err := r.itemsDe(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrdenRepo) itemsDe(ctx context.Context, ordenID string) ([]entity.OrdenItem, error) {
	query := `
		SELECT id, orden_id, producto, cantidad, especificaciones, precio_unitario, subtotal
		FROM orden_items WHERE orden_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, ordenID)
	if err != nil {
		return nil, fmt.Errorf("list orden items: %w", err)
	}
	defer rows.Close()
	var items []entity.OrdenItem
	for rows.Next() {
		var it entity.OrdenItem
		if err := rows.Scan(&it.ID, &it.OrdenID, &it.Producto, &it.Cantidad, &it.Especificaciones, &it.PrecioUnitario, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Listar devuelve las órdenes paginadas, más recientes primero (sin ítems,
// vista de listado).
func (r *OrdenRepo) Listar(ctx context.Context, limit, offset int) ([]*entity.Orden, error) {
	query := `
		SELECT ` + ordenColumns + `
		FROM ordenes o
		LEFT JOIN clientes c ON c.id = o.cliente_id
		ORDER BY o.fecha_creacion DESC
		LIMIT $1 OFFSET $2`
	return r.listar(ctx, query, limit, offset)
}

// ListarColaSinAsignar devuelve las órdenes en el estado de cola del
// departamento cuya fase sigue libre (o aún no existe), más antiguas primero.
func (r *OrdenRepo) ListarColaSinAsignar(ctx context.Context, dep produccion.Departamento) ([]*entity.Orden, error) {
	tabla, err := faseTable(dep)
	if err != nil {
		return nil, err
	}
	query := `
		SELECT ` + ordenColumns + `
		FROM ordenes o
		LEFT JOIN clientes c ON c.id = o.cliente_id
		LEFT JOIN ` + tabla + ` f ON f.orden_id = o.id
		WHERE o.estado = $1 AND f.asignado_id IS NULL
		ORDER BY o.fecha_creacion ASC`
	return r.listar(ctx, query, string(dep.EstadoCola()))
}

func (r *OrdenRepo) listar(ctx context.Context, query string, args ...any) ([]*entity.Orden, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ordenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Orden
	for rows.Next() {
		var o entity.Orden
		var estado string
		if err := rows.Scan(
			&o.ID, &o.Codigo, &o.OTID, &o.ClienteID, &o.ClienteNombre,
			&estado, &o.Facturada, &o.Total, &o.Notas,
			&o.FechaCreacion, &o.FechaAsignacionGlobal, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		o.Estado = produccion.Estado(estado)
		list = append(list, &o)
	}
	return list, rows.Err()
}

// ActualizarEstado cambia solo el estado global.
func (r *OrdenRepo) ActualizarEstado(ctx context.Context, id string, estado produccion.Estado) error {
	query := `UPDATE ordenes SET estado = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, string(estado))
	if err != nil {
		return fmt.Errorf("update estado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, id)
	}
	return nil
}

// ConvertirAOT asigna código OT y estado inicial de producción solo si la
// orden sigue en negociación. El update condicional resuelve la carrera entre
// dos conversiones simultáneas sin lock explícito.
func (r *OrdenRepo) ConvertirAOT(ctx context.Context, id, otID string, ahora time.Time) (bool, error) {
	query := `
		UPDATE ordenes
		SET ot_id = $2, estado = $3, fecha_asignacion_global = $4, updated_at = $4
		WHERE id = $1 AND estado = $5`
	tag, err := r.q.Exec(ctx, query,
		id, otID, string(produccion.EstadoOrdenCreada), ahora, string(produccion.EstadoEnNegociacion),
	)
	if err != nil {
		return false, fmt.Errorf("convertir a OT: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarcarFacturada enciende el flag de facturación.
func (r *OrdenRepo) MarcarFacturada(ctx context.Context, id string) error {
	query := `UPDATE ordenes SET facturada = TRUE, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("marcar facturada: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, id)
	}
	return nil
}
