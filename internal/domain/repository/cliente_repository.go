package repository

import (
	"context"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
)

// ClienteRepository define el puerto de persistencia de clientes.
type ClienteRepository interface {
	// Crear inserta el cliente. Un documento repetido se reporta como
	// domain.ErrDuplicado (constraint único sobre ruc_dni).
	Crear(ctx context.Context, cliente *entity.Cliente) error
	Actualizar(ctx context.Context, cliente *entity.Cliente) error
	ObtenerPorID(ctx context.Context, id string) (*entity.Cliente, error)
	// Buscar filtra por razón social o documento (prefijo/contiene).
	Buscar(ctx context.Context, consulta string, limit int) ([]*entity.Cliente, error)
}
