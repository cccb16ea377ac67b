package repository

import (
	"context"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
)

// UsuarioRepository define el puerto de persistencia de usuarios.
type UsuarioRepository interface {
	ObtenerPorEmail(ctx context.Context, email string) (*entity.Usuario, error)
	ObtenerPorID(ctx context.Context, id string) (*entity.Usuario, error)
	Crear(ctx context.Context, usuario *entity.Usuario) error
}
