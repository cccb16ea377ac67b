package clientes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

// UseCase casos de uso de clientes: alta, edición, búsqueda y consulta del
// documento en el padrón externo.
type UseCase struct {
	repo     repository.ClienteRepository
	consulta ConsultaDocumento
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ClienteRepository, consulta ConsultaDocumento) *UseCase {
	return &UseCase{repo: repo, consulta: consulta}
}

// Crear da de alta un cliente. El tipo de persona se infiere del largo del
// documento cuando no viene en el request (8 = DNI, 11 = RUC).
func (uc *UseCase) Crear(ctx context.Context, in dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	doc := strings.TrimSpace(in.RucDni)
	if err := validarDocumento(doc); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.RazonSocial) == "" {
		return nil, fmt.Errorf("%w: la razón social es obligatoria", domain.ErrEntradaInvalida)
	}
	tipo := in.TipoPersona
	if tipo == "" {
		tipo = entity.PersonaJuridica
		if len(doc) == 8 {
			tipo = entity.PersonaNatural
		}
	}
	if tipo != entity.PersonaNatural && tipo != entity.PersonaJuridica {
		return nil, fmt.Errorf("%w: tipo de persona %q", domain.ErrEntradaInvalida, tipo)
	}

	now := time.Now()
	cliente := &entity.Cliente{
		ID:             uuid.New().String(),
		TipoPersona:    tipo,
		RucDni:         doc,
		RazonSocial:    strings.TrimSpace(in.RazonSocial),
		NombreContacto: in.Contacto,
		Email:          in.Email,
		Telefono:       in.Telefono,
		Direccion:      in.Direccion,
		Departamento:   in.Departamento,
		Provincia:      in.Provincia,
		Distrito:       in.Distrito,
		Estado:         "Activo",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Crear(ctx, cliente); err != nil {
		return nil, err
	}
	resp := dto.NuevaClienteResponse(cliente)
	return &resp, nil
}

// Actualizar edita los datos de contacto y dirección. El documento y el tipo
// de persona son inmutables: identifican al sujeto tributario.
func (uc *UseCase) Actualizar(ctx context.Context, id string, in dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := uc.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNoEncontrado, id)
	}
	cliente.NombreContacto = in.Contacto
	cliente.Telefono = in.Telefono
	cliente.Email = in.Email
	cliente.Direccion = in.Direccion
	cliente.Distrito = in.Distrito
	cliente.Provincia = in.Provincia
	cliente.Departamento = in.Departamento
	cliente.UpdatedAt = time.Now()
	if err := uc.repo.Actualizar(ctx, cliente); err != nil {
		return nil, err
	}
	resp := dto.NuevaClienteResponse(cliente)
	return &resp, nil
}

// Obtener devuelve el cliente por id.
func (uc *UseCase) Obtener(ctx context.Context, id string) (*dto.ClienteResponse, error) {
	cliente, err := uc.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNoEncontrado, id)
	}
	resp := dto.NuevaClienteResponse(cliente)
	return &resp, nil
}

// Buscar filtra clientes por razón social o documento.
func (uc *UseCase) Buscar(ctx context.Context, consulta string, limit int) ([]dto.ClienteResponse, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	list, err := uc.repo.Buscar(ctx, strings.TrimSpace(consulta), limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.NuevaClienteResponse(c))
	}
	return items, nil
}

// ConsultarDocumento busca el documento en el padrón externo para autocompletar
// el alta de cliente.
func (uc *UseCase) ConsultarDocumento(ctx context.Context, numero string) (*dto.ConsultaDocumentoResponse, error) {
	numero = strings.TrimSpace(numero)
	if err := validarDocumento(numero); err != nil {
		return nil, err
	}
	return uc.consulta.Consultar(ctx, numero)
}

// validarDocumento exige 8 dígitos (DNI) u 11 dígitos (RUC).
func validarDocumento(doc string) error {
	if len(doc) != 8 && len(doc) != 11 {
		return fmt.Errorf("%w: el documento debe tener 8 dígitos (DNI) u 11 (RUC)", domain.ErrEntradaInvalida)
	}
	for _, r := range doc {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: el documento solo admite dígitos", domain.ErrEntradaInvalida)
		}
	}
	return nil
}
