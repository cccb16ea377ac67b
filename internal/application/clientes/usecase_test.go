package clientes_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/clientes"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

type repoFake struct{ clientes map[string]*entity.Cliente }

var _ repository.ClienteRepository = (*repoFake)(nil)

func (r *repoFake) Crear(ctx context.Context, c *entity.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *repoFake) Actualizar(ctx context.Context, c *entity.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *repoFake) ObtenerPorID(ctx context.Context, id string) (*entity.Cliente, error) {
	return r.clientes[id], nil
}

func (r *repoFake) Buscar(ctx context.Context, consulta string, limit int) ([]*entity.Cliente, error) {
	var list []*entity.Cliente
	for _, c := range r.clientes {
		if strings.Contains(c.RazonSocial, consulta) || strings.Contains(c.RucDni, consulta) {
			list = append(list, c)
		}
	}
	return list, nil
}

// consultaFake responde el padrón externo solo para un documento conocido.
type consultaFake struct{ caida bool }

func (f consultaFake) Consultar(ctx context.Context, numero string) (*dto.ConsultaDocumentoResponse, error) {
	if f.caida {
		return nil, fmt.Errorf("%w: timeout", domain.ErrConsultaNoDisponible)
	}
	if numero != "20481234567" {
		return nil, fmt.Errorf("%w: documento %s", domain.ErrNoEncontrado, numero)
	}
	return &dto.ConsultaDocumentoResponse{
		TipoPersona: entity.PersonaJuridica,
		RucDni:      numero,
		RazonSocial: "LIBRERIA EL SABER S.A.C.",
		Direccion:   "JR. PIZARRO 456, TRUJILLO",
	}, nil
}

func nuevoUC(consulta clientes.ConsultaDocumento) (*clientes.UseCase, *repoFake) {
	repo := &repoFake{clientes: make(map[string]*entity.Cliente)}
	return clientes.NewUseCase(repo, consulta), repo
}

func TestCrear_InfiereTipoDePersona(t *testing.T) {
	uc, _ := nuevoUC(consultaFake{})
	ctx := context.Background()

	natural, err := uc.Crear(ctx, dto.CrearClienteRequest{RucDni: "45678912", RazonSocial: "María Quispe"})
	require.NoError(t, err)
	assert.Equal(t, entity.PersonaNatural, natural.TipoPersona, "8 dígitos es DNI")

	juridica, err := uc.Crear(ctx, dto.CrearClienteRequest{RucDni: "20481234567", RazonSocial: "El Saber S.A.C."})
	require.NoError(t, err)
	assert.Equal(t, entity.PersonaJuridica, juridica.TipoPersona, "11 dígitos es RUC")
}

func TestCrear_ValidaDocumento(t *testing.T) {
	uc, _ := nuevoUC(consultaFake{})
	ctx := context.Background()

	casos := []dto.CrearClienteRequest{
		{RucDni: "123", RazonSocial: "Corto"},            // largo inválido
		{RucDni: "4567891X", RazonSocial: "No numérico"}, // letra en el documento
		{RucDni: "45678912"},                             // sin razón social
		{RucDni: "45678912", RazonSocial: "X", TipoPersona: "EXTRANJERA"},
	}
	for _, in := range casos {
		_, err := uc.Crear(ctx, in)
		assert.ErrorIsf(t, err, domain.ErrEntradaInvalida, "request %+v", in)
	}
}

func TestActualizar_DocumentoInmutable(t *testing.T) {
	uc, repo := nuevoUC(consultaFake{})
	ctx := context.Background()

	creado, err := uc.Crear(ctx, dto.CrearClienteRequest{RucDni: "20481234567", RazonSocial: "El Saber S.A.C."})
	require.NoError(t, err)

	actualizado, err := uc.Actualizar(ctx, creado.ID, dto.ActualizarClienteRequest{
		Telefono:  "944123456",
		Direccion: "Av. Larco 999",
	})
	require.NoError(t, err)
	assert.Equal(t, "944123456", actualizado.Telefono)
	assert.Equal(t, "20481234567", actualizado.RucDni, "el documento no cambia en la edición")
	assert.Equal(t, entity.PersonaJuridica, repo.clientes[creado.ID].TipoPersona)

	_, err = uc.Actualizar(ctx, "no-existe", dto.ActualizarClienteRequest{})
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestConsultarDocumento(t *testing.T) {
	uc, _ := nuevoUC(consultaFake{})
	ctx := context.Background()

	resp, err := uc.ConsultarDocumento(ctx, "20481234567")
	require.NoError(t, err)
	assert.Equal(t, "LIBRERIA EL SABER S.A.C.", resp.RazonSocial)

	_, err = uc.ConsultarDocumento(ctx, "20999999999")
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)

	_, err = uc.ConsultarDocumento(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "se valida antes de salir al padrón")
}

// El padrón caído no bloquea el alta manual: la consulta falla con un error
// distinguible y Crear sigue funcionando.
func TestConsultarDocumento_PadronCaido(t *testing.T) {
	uc, _ := nuevoUC(consultaFake{caida: true})
	ctx := context.Background()

	_, err := uc.ConsultarDocumento(ctx, "20481234567")
	assert.ErrorIs(t, err, domain.ErrConsultaNoDisponible)

	_, err = uc.Crear(ctx, dto.CrearClienteRequest{RucDni: "20481234567", RazonSocial: "Manual S.A.C."})
	assert.NoError(t, err)
}
