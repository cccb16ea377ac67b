package ordenes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

// UseCase casos de uso del flujo comercial: cotización, edición, conversión
// a orden de trabajo y cierre comercial (rechazo / cancelación).
type UseCase struct {
	txRunner    TxRunner
	ordenRepo   repository.OrdenRepository
	clienteRepo repository.ClienteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, ordenRepo repository.OrdenRepository, clienteRepo repository.ClienteRepository) *UseCase {
	return &UseCase{txRunner: txRunner, ordenRepo: ordenRepo, clienteRepo: clienteRepo}
}

// CrearCotizacion crea una orden en negociación con su código COT. El código
// se emite dentro de la misma transacción que inserta la orden.
func (uc *UseCase) CrearCotizacion(ctx context.Context, actor string, in dto.CrearCotizacionRequest) (*dto.OrdenResponse, error) {
	if in.ClienteID == "" || len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: cliente e ítems son obligatorios", domain.ErrEntradaInvalida)
	}
	items, err := validarItems(in.Items)
	if err != nil {
		return nil, err
	}

	cliente, err := uc.clienteRepo.ObtenerPorID(ctx, in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNoEncontrado, in.ClienteID)
	}

	now := time.Now()
	orden := &entity.Orden{
		ID:            uuid.New().String(),
		OTID:          produccion.OTPendiente,
		ClienteID:     cliente.ID,
		ClienteNombre: cliente.RazonSocial,
		Estado:        produccion.EstadoEnNegociacion,
		Items:         items,
		Notas:         in.Notas,
		FechaCreacion: now,
		UpdatedAt:     now,
	}
	for i := range orden.Items {
		orden.Items[i].ID = uuid.New().String()
		orden.Items[i].OrdenID = orden.ID
	}
	orden.CalcularTotal()

	err = uc.txRunner.RunComercial(ctx, func(
		ordenRepo repository.OrdenRepository,
		_ repository.FaseRepository,
		correlativoRepo repository.CorrelativoRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error {
		codigo, err := correlativoRepo.Siguiente(ctx, produccion.PrefijoCotizacion)
		if err != nil {
			return err
		}
		orden.Codigo = codigo
		if err := ordenRepo.Crear(ctx, orden); err != nil {
			return err
		}
		return auditoriaRepo.Registrar(ctx, &entity.Auditoria{
			ID:        uuid.New().String(),
			Accion:    "COTIZACION_CREADA",
			Actor:     actor,
			Detalle:   fmt.Sprintf("Cotización %s creada para %s por S/ %s", codigo, cliente.RazonSocial, orden.Total.StringFixed(2)),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NuevaOrdenResponse(orden)
	return &resp, nil
}

// Actualizar reescribe ítems y notas de una cotización. Solo procede mientras
// la orden siga en negociación y sin facturar; en cualquier otro caso el
// candado de edición responde ErrEdicionBloqueada.
func (uc *UseCase) Actualizar(ctx context.Context, actor, id string, in dto.ActualizarOrdenRequest) (*dto.OrdenResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la orden debe conservar al menos un ítem", domain.ErrEntradaInvalida)
	}
	items, err := validarItems(in.Items)
	if err != nil {
		return nil, err
	}

	var orden *entity.Orden
	err = uc.txRunner.RunComercial(ctx, func(
		ordenRepo repository.OrdenRepository,
		_ repository.FaseRepository,
		_ repository.CorrelativoRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error {
		var err error
		orden, err = ordenRepo.ObtenerPorID(ctx, id)
		if err != nil {
			return err
		}
		if orden == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, id)
		}
		if !orden.PuedeEditarse() {
			return fmt.Errorf("%w: estado %q", domain.ErrEdicionBloqueada, orden.Estado)
		}
		orden.Items = items
		for i := range orden.Items {
			orden.Items[i].ID = uuid.New().String()
			orden.Items[i].OrdenID = orden.ID
		}
		orden.Notas = in.Notas
		orden.CalcularTotal()
		orden.UpdatedAt = time.Now()
		if err := ordenRepo.Actualizar(ctx, orden); err != nil {
			return err
		}
		return auditoriaRepo.Registrar(ctx, &entity.Auditoria{
			ID:        uuid.New().String(),
			Accion:    "COTIZACION_ACTUALIZADA",
			Actor:     actor,
			Detalle:   fmt.Sprintf("Cotización %s actualizada, nuevo total S/ %s", orden.Codigo, orden.Total.StringFixed(2)),
			CreatedAt: orden.UpdatedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NuevaOrdenResponse(orden)
	return &resp, nil
}

// ConvertirAOT convierte la cotización en orden de trabajo: emite el código
// OT, mueve el estado a "Orden creada" y deja la fase de pre-prensa en cola.
// La conversión es condicional en el almacén: dos ventas simultáneas sobre la
// misma cotización producen exactamente una OT.
func (uc *UseCase) ConvertirAOT(ctx context.Context, actor, id string) (*dto.OrdenResponse, error) {
	var orden *entity.Orden
	err := uc.txRunner.RunComercial(ctx, func(
		ordenRepo repository.OrdenRepository,
		faseRepo repository.FaseRepository,
		correlativoRepo repository.CorrelativoRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error {
		var err error
		orden, err = ordenRepo.ObtenerPorID(ctx, id)
		if err != nil {
			return err
		}
		if orden == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, id)
		}
		if !orden.Estado.PuedeTransicionarA(produccion.EstadoOrdenCreada) {
			return fmt.Errorf("%w: %q no admite conversión a OT", domain.ErrTransicionInvalida, orden.Estado)
		}
		// A producción solo entran trabajos con monto: se verifica antes de
		// consumir el correlativo OT.
		if !orden.Total.IsPositive() {
			return fmt.Errorf("%w: no se convierte una cotización con total S/ %s", domain.ErrConflictoEstado, orden.Total.StringFixed(2))
		}

		otID, err := correlativoRepo.Siguiente(ctx, produccion.PrefijoOT)
		if err != nil {
			return err
		}
		now := time.Now()
		ok, err := ordenRepo.ConvertirAOT(ctx, id, otID, now)
		if err != nil {
			return err
		}
		if !ok {
			// Otra conversión ganó la carrera entre la lectura y el update.
			return fmt.Errorf("%w: la orden ya fue convertida", domain.ErrConflictoEstado)
		}
		if err := faseRepo.CrearPendiente(ctx, produccion.DepartamentoPreprensa, id, now); err != nil {
			return err
		}
		orden.OTID = otID
		orden.Estado = produccion.EstadoOrdenCreada
		orden.FechaAsignacionGlobal = &now
		orden.UpdatedAt = now
		return auditoriaRepo.Registrar(ctx, &entity.Auditoria{
			ID:        uuid.New().String(),
			Accion:    "CONVERSION_OT",
			Actor:     actor,
			Detalle:   fmt.Sprintf("Cotización %s convertida en %s, enviada a pre-prensa", orden.Codigo, otID),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NuevaOrdenResponse(orden)
	return &resp, nil
}

// Rechazar marca la cotización como rechazada por el cliente. Terminal.
func (uc *UseCase) Rechazar(ctx context.Context, actor, id, motivo string) (*dto.OrdenResponse, error) {
	return uc.cerrar(ctx, actor, id, produccion.EstadoRechazada, "COTIZACION_RECHAZADA", motivo)
}

// Cancelar cancela la cotización antes de entrar a producción. Terminal.
func (uc *UseCase) Cancelar(ctx context.Context, actor, id, motivo string) (*dto.OrdenResponse, error) {
	return uc.cerrar(ctx, actor, id, produccion.EstadoCancelada, "COTIZACION_CANCELADA", motivo)
}

func (uc *UseCase) cerrar(ctx context.Context, actor, id string, destino produccion.Estado, accion, motivo string) (*dto.OrdenResponse, error) {
	var orden *entity.Orden
	err := uc.txRunner.RunComercial(ctx, func(
		ordenRepo repository.OrdenRepository,
		_ repository.FaseRepository,
		_ repository.CorrelativoRepository,
		auditoriaRepo repository.AuditoriaRepository,
	) error {
		var err error
		orden, err = ordenRepo.ObtenerPorID(ctx, id)
		if err != nil {
			return err
		}
		if orden == nil {
			return fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, id)
		}
		if !orden.Estado.PuedeTransicionarA(destino) {
			return fmt.Errorf("%w: %q → %q", domain.ErrTransicionInvalida, orden.Estado, destino)
		}
		if err := ordenRepo.ActualizarEstado(ctx, id, destino); err != nil {
			return err
		}
		orden.Estado = destino
		detalle := fmt.Sprintf("Cotización %s pasó a %q", orden.Codigo, destino)
		if motivo != "" {
			detalle += ": " + motivo
		}
		return auditoriaRepo.Registrar(ctx, &entity.Auditoria{
			ID:        uuid.New().String(),
			Accion:    accion,
			Actor:     actor,
			Detalle:   detalle,
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NuevaOrdenResponse(orden)
	return &resp, nil
}

// Obtener devuelve la orden por id.
func (uc *UseCase) Obtener(ctx context.Context, id string) (*dto.OrdenResponse, error) {
	orden, err := uc.ordenRepo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, id)
	}
	resp := dto.NuevaOrdenResponse(orden)
	return &resp, nil
}

// BuscarPorCodigo localiza una orden por id, código COT o código OT.
func (uc *UseCase) BuscarPorCodigo(ctx context.Context, codigo string) (*dto.OrdenResponse, error) {
	codigo = strings.TrimSpace(codigo)
	if codigo == "" {
		return nil, fmt.Errorf("%w: código vacío", domain.ErrEntradaInvalida)
	}
	orden, err := uc.ordenRepo.BuscarPorCodigo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoEncontrado, codigo)
	}
	resp := dto.NuevaOrdenResponse(orden)
	return &resp, nil
}

// Listar devuelve las órdenes paginadas, más recientes primero.
func (uc *UseCase) Listar(ctx context.Context, limit, offset int) ([]dto.OrdenResponse, error) {
	list, err := uc.ordenRepo.Listar(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrdenResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.NuevaOrdenResponse(o))
	}
	return items, nil
}

// validarItems valida cada línea y la convierte a entidad. Las cantidades
// deben ser positivas, los precios no negativos y cada ítem debe llevar las
// especificaciones que producción necesita para ejecutarlo.
func validarItems(in []dto.ItemRequest) ([]entity.OrdenItem, error) {
	items := make([]entity.OrdenItem, 0, len(in))
	for i, it := range in {
		if strings.TrimSpace(it.Producto) == "" {
			return nil, fmt.Errorf("%w: ítem %d sin producto", domain.ErrEntradaInvalida, i+1)
		}
		if it.Cantidad <= 0 {
			return nil, fmt.Errorf("%w: ítem %d con cantidad no positiva", domain.ErrEntradaInvalida, i+1)
		}
		if it.PrecioUnitario.IsNegative() {
			return nil, fmt.Errorf("%w: ítem %d con precio negativo", domain.ErrEntradaInvalida, i+1)
		}
		if strings.TrimSpace(it.Especificaciones) == "" {
			return nil, fmt.Errorf("%w: ítem %d sin especificaciones para producción", domain.ErrEntradaInvalida, i+1)
		}
		items = append(items, entity.OrdenItem{
			Producto:         strings.TrimSpace(it.Producto),
			Cantidad:         it.Cantidad,
			Especificaciones: it.Especificaciones,
			PrecioUnitario:   it.PrecioUnitario,
		})
	}
	return items, nil
}
