// Package historial arma la línea de tiempo de trazabilidad de una orden a
// partir del registro de auditoría.
package historial

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

// UseCase reconstruye la trazabilidad completa de una orden.
type UseCase struct {
	ordenRepo     repository.OrdenRepository
	auditoriaRepo repository.AuditoriaRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(ordenRepo repository.OrdenRepository, auditoriaRepo repository.AuditoriaRepository) *UseCase {
	return &UseCase{ordenRepo: ordenRepo, auditoriaRepo: auditoriaRepo}
}

// Trazabilidad localiza la orden por id, código COT o código OT y devuelve
// todos sus eventos de auditoría ordenados del más antiguo al más reciente.
func (uc *UseCase) Trazabilidad(ctx context.Context, referencia string) (*dto.HistorialResponse, error) {
	referencia = strings.TrimSpace(referencia)
	if referencia == "" {
		return nil, fmt.Errorf("%w: referencia vacía", domain.ErrEntradaInvalida)
	}
	orden, err := uc.ordenRepo.BuscarPorCodigo(ctx, referencia)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoEncontrado, referencia)
	}

	// El detalle de auditoría referencia la orden por cualquiera de sus
	// identificadores; se buscan todos.
	referencias := []string{orden.ID, orden.Codigo}
	if orden.OTID != "" && orden.OTID != produccion.OTPendiente {
		referencias = append(referencias, orden.OTID)
	}
	entradas, err := uc.auditoriaRepo.ListarPorReferencia(ctx, referencias)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entradas, func(i, j int) bool {
		return entradas[i].CreatedAt.Before(entradas[j].CreatedAt)
	})

	eventos := make([]dto.EntradaHistorialResponse, 0, len(entradas))
	for _, a := range entradas {
		eventos = append(eventos, dto.NuevaEntradaHistorial(a))
	}
	return &dto.HistorialResponse{
		OrdenID: orden.ID,
		Codigo:  orden.Codigo,
		OTID:    orden.OTID,
		Estado:  string(orden.Estado),
		Eventos: eventos,
	}, nil
}
