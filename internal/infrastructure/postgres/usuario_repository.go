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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Crear persiste el usuario. Email repetido -> ErrDuplicado.
func (r *UsuarioRepo) Crear(ctx context.Context, usuario *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, email, nombre, password_hash, rol, activo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		usuario.ID, usuario.Email, usuario.Nombre, usuario.PasswordHash,
		usuario.Rol, usuario.Activo, usuario.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// ObtenerPorEmail devuelve el usuario o nil si no existe.
func (r *UsuarioRepo) ObtenerPorEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	return r.obtener(ctx, `WHERE email = $1`, email)
}

// ObtenerPorID devuelve el usuario o nil si no existe.
func (r *UsuarioRepo) ObtenerPorID(ctx context.Context, id string) (*entity.Usuario, error) {
	return r.obtener(ctx, `WHERE id = $1`, id)
}

func (r *UsuarioRepo) obtener(ctx context.Context, where, arg string) (*entity.Usuario, error) {
	query := `
		SELECT id, email, nombre, password_hash, rol, activo, created_at
		FROM usuarios ` + where
	var u entity.Usuario
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Nombre, &u.PasswordHash, &u.Rol, &u.Activo, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}
