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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación del puerto ClienteRepository sobre PostgreSQL.
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = `
	id, tipo_persona, ruc_dni, razon_social,
	COALESCE(nombre_contacto, ''), COALESCE(email, ''), COALESCE(telefono, ''),
	COALESCE(direccion, ''), COALESCE(departamento, ''), COALESCE(provincia, ''),
	COALESCE(distrito, ''), COALESCE(ubigeo, ''), estado, created_at, updated_at`

// Crear inserta el cliente. Documento repetido -> ErrDuplicado (único sobre ruc_dni).
func (r *ClienteRepo) Crear(ctx context.Context, cliente *entity.Cliente) error {
	query := `
		INSERT INTO clientes (id, tipo_persona, ruc_dni, razon_social, nombre_contacto, email, telefono, direccion, departamento, provincia, distrito, ubigeo, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		cliente.ID, cliente.TipoPersona, cliente.RucDni, cliente.RazonSocial,
		nullIfEmpty(cliente.NombreContacto), nullIfEmpty(cliente.Email), nullIfEmpty(cliente.Telefono),
		nullIfEmpty(cliente.Direccion), nullIfEmpty(cliente.Departamento), nullIfEmpty(cliente.Provincia),
		nullIfEmpty(cliente.Distrito), nullIfEmpty(cliente.Ubigeo), cliente.Estado,
		cliente.CreatedAt, cliente.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// Actualizar edita contacto y dirección. Documento y tipo no se tocan.
func (r *ClienteRepo) Actualizar(ctx context.Context, cliente *entity.Cliente) error {
	query := `
		UPDATE clientes
		SET razon_social = $2, nombre_contacto = $3, email = $4, telefono = $5,
		    direccion = $6, departamento = $7, provincia = $8, distrito = $9,
		    updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		cliente.ID, cliente.RazonSocial,
		nullIfEmpty(cliente.NombreContacto), nullIfEmpty(cliente.Email), nullIfEmpty(cliente.Telefono),
		nullIfEmpty(cliente.Direccion), nullIfEmpty(cliente.Departamento), nullIfEmpty(cliente.Provincia),
		nullIfEmpty(cliente.Distrito), cliente.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cliente %s", domain.ErrNoEncontrado, cliente.ID)
	}
	return nil
}

// ObtenerPorID devuelve el cliente o nil si no existe.
func (r *ClienteRepo) ObtenerPorID(ctx context.Context, id string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE id = $1`
	var c entity.Cliente
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.TipoPersona, &c.RucDni, &c.RazonSocial,
		&c.NombreContacto, &c.Email, &c.Telefono,
		&c.Direccion, &c.Departamento, &c.Provincia,
		&c.Distrito, &c.Ubigeo, &c.Estado, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// Buscar filtra por razón social o documento (contiene, sin distinción de mayúsculas).
func (r *ClienteRepo) Buscar(ctx context.Context, consulta string, limit int) ([]*entity.Cliente, error) {
	query := `
		SELECT ` + clienteColumns + `
		FROM clientes
		WHERE ($1 = '' OR razon_social ILIKE '%' || $1 || '%' OR ruc_dni LIKE $1 || '%')
		ORDER BY razon_social ASC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, consulta, limit)
	if err != nil {
		return nil, fmt.Errorf("buscar clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(
			&c.ID, &c.TipoPersona, &c.RucDni, &c.RazonSocial,
			&c.NombreContacto, &c.Email, &c.Telefono,
			&c.Direccion, &c.Departamento, &c.Provincia,
			&c.Distrito, &c.Ubigeo, &c.Estado, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
