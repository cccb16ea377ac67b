package clientes

import (
	"context"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
)

// ConsultaDocumento consulta el padrón externo (RENIEC/SUNAT) por DNI o RUC.
// Una falla del servicio externo se reporta como domain.ErrConsultaNoDisponible;
// un documento inexistente como domain.ErrNoEncontrado.
type ConsultaDocumento interface {
	Consultar(ctx context.Context, numero string) (*dto.ConsultaDocumentoResponse, error)
}
