package ordenes

import (
	"context"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos del
// flujo comercial atados a ella. Si fn devuelve error se hace rollback: el
// correlativo consumido, la orden y la entrada de auditoría se descartan
// juntos, nunca queda un código emitido sin su orden.
type TxRunner interface {
	RunComercial(ctx context.Context, fn func(
		ordenRepo repository.OrdenRepository,
		faseRepo repository.FaseRepository,
		correlativoRepo repository.CorrelativoRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error) error
}
