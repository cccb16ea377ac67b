package ordenes_test

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/ordenes"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
)

func nuevoUseCase(t *testing.T) (*ordenes.UseCase, *memStore) {
	t.Helper()
	s := newMemStore()
	s.agregarCliente(&entity.Cliente{
		ID:          "cli-1",
		TipoPersona: entity.PersonaJuridica,
		RucDni:      "20481234567",
		RazonSocial: "Librería El Saber S.A.C.",
	})
	return ordenes.NewUseCase(txRunnerFake{s}, ordenRepoFake{s}, clienteRepoFake{s}), s
}

func requestBasica() dto.CrearCotizacionRequest {
	return dto.CrearCotizacionRequest{
		ClienteID: "cli-1",
		Items: []dto.ItemRequest{
			{
				Producto:         "Volantes A5",
				Cantidad:         1000,
				Especificaciones: "couché 150g, full color, tira y retira",
				PrecioUnitario:   decimal.RequireFromString("0.35"),
			},
		},
		Notas: "entrega urgente",
	}
}

func TestCrearCotizacion(t *testing.T) {
	uc, s := nuevoUseCase(t)

	orden, err := uc.CrearCotizacion(context.Background(), "vendedor", requestBasica())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(orden.Codigo, "COT-"), "el código debe llevar prefijo COT")
	assert.Equal(t, produccion.OTPendiente, orden.OTID, "sin conversión, el OT queda pendiente")
	assert.Equal(t, string(produccion.EstadoEnNegociacion), orden.Estado)
	assert.True(t, orden.Total.Equal(decimal.RequireFromString("350.00")))
	assert.Equal(t, []string{"COTIZACION_CREADA"}, s.acciones())
}

func TestCrearCotizacion_Validaciones(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	_, err := uc.CrearCotizacion(ctx, "vendedor", dto.CrearCotizacionRequest{ClienteID: "cli-1"})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "sin ítems no hay cotización")

	in := requestBasica()
	in.Items[0].Cantidad = 0
	_, err = uc.CrearCotizacion(ctx, "vendedor", in)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "cantidad cero es inválida")

	in = requestBasica()
	in.Items[0].PrecioUnitario = decimal.RequireFromString("-1")
	_, err = uc.CrearCotizacion(ctx, "vendedor", in)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "precio negativo es inválido")

	in = requestBasica()
	in.Items[0].Especificaciones = "   "
	_, err = uc.CrearCotizacion(ctx, "vendedor", in)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "producción necesita las especificaciones del ítem")

	in = requestBasica()
	in.ClienteID = "no-existe"
	_, err = uc.CrearCotizacion(ctx, "vendedor", in)
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestCrearCotizacion_CodigosCorrelativos(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	o1, err := uc.CrearCotizacion(ctx, "vendedor", requestBasica())
	require.NoError(t, err)
	o2, err := uc.CrearCotizacion(ctx, "vendedor", requestBasica())
	require.NoError(t, err)

	assert.NotEqual(t, o1.Codigo, o2.Codigo, "los correlativos nunca se repiten")
}

func TestActualizar_RecalculaTotal(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	orden, err := uc.CrearCotizacion(ctx, "vendedor", requestBasica())
	require.NoError(t, err)

	actualizada, err := uc.Actualizar(ctx, "vendedor", orden.ID, dto.ActualizarOrdenRequest{
		Items: []dto.ItemRequest{
			{
				Producto:         "Volantes A5",
				Cantidad:         2000,
				Especificaciones: "couché 150g, full color, tira y retira",
				PrecioUnitario:   decimal.RequireFromString("0.30"),
			},
		},
	})
	require.NoError(t, err)
	assert.True(t, actualizada.Total.Equal(decimal.RequireFromString("600.00")),
		"el total se recalcula en el servidor")
	assert.Equal(t, orden.Codigo, actualizada.Codigo, "el código COT es inmutable")
}

func TestActualizar_CandadoDeEdicion(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	orden, err := uc.CrearCotizacion(ctx, "vendedor", requestBasica())
	require.NoError(t, err)
	_, err = uc.ConvertirAOT(ctx, "vendedor", orden.ID)
	require.NoError(t, err)

	// Convertida a OT, la edición comercial queda bloqueada.
	_, err = uc.Actualizar(ctx, "vendedor", orden.ID, dto.ActualizarOrdenRequest{
		Items: []dto.ItemRequest{
			{
				Producto:         "Otro",
				Cantidad:         1,
				Especificaciones: "bond 75g",
				PrecioUnitario:   decimal.RequireFromString("1.00"),
			},
		},
	})
	assert.ErrorIs(t, err, domain.ErrEdicionBloqueada)
}

func TestConvertirAOT(t *testing.T) {
	uc, s := nuevoUseCase(t)
	ctx := context.Background()

	orden, err := uc.CrearCotizacion(ctx, "vendedor", requestBasica())
	require.NoError(t, err)

	ot, err := uc.ConvertirAOT(ctx, "vendedor", orden.ID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ot.OTID, "OT-"), "la conversión emite el código OT")
	assert.Equal(t, orden.Codigo, ot.Codigo, "el código COT se conserva tras la conversión")
	assert.Equal(t, string(produccion.EstadoOrdenCreada), ot.Estado)

	// La fase de pre-prensa queda en cola, sin dueño.
	fase := s.fase(produccion.DepartamentoPreprensa, orden.ID)
	require.NotNil(t, fase, "la conversión deja la fase de pre-prensa creada")
	assert.Nil(t, fase.AsignadoID)
	assert.Equal(t, []string{"COTIZACION_CREADA", "CONVERSION_OT"}, s.acciones())
}

func TestConvertirAOT_DobleConversion(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	orden, err := uc.CrearCotizacion(ctx, "vendedor", requestBasica())
	require.NoError(t, err)
	_, err = uc.ConvertirAOT(ctx, "vendedor", orden.ID)
	require.NoError(t, err)

	_, err = uc.ConvertirAOT(ctx, "vendedor", orden.ID)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida, "una OT no se convierte dos veces")
}

// Una cotización sin monto (precio unitario en cero) no entra a producción:
// la conversión se rechaza antes de consumir el correlativo OT.
func TestConvertirAOT_RechazaTotalCero(t *testing.T) {
	uc, s := nuevoUseCase(t)
	ctx := context.Background()

	in := requestBasica()
	in.Items[0].PrecioUnitario = decimal.Zero
	orden, err := uc.CrearCotizacion(ctx, "vendedor", in)
	require.NoError(t, err)
	require.True(t, orden.Total.IsZero())

	_, err = uc.ConvertirAOT(ctx, "vendedor", orden.ID)
	assert.ErrorIs(t, err, domain.ErrConflictoEstado)

	s.mu.Lock()
	guardada := s.ordenes[orden.ID]
	correlativoOT := s.correlativos[produccion.PrefijoOT]
	s.mu.Unlock()
	assert.Equal(t, produccion.OTPendiente, guardada.OTID, "la orden sigue sin OT")
	assert.Equal(t, string(produccion.EstadoEnNegociacion), string(guardada.Estado))
	assert.Zero(t, correlativoOT, "el rechazo no consume correlativo OT")
}

// N cotizaciones creadas a la vez reciben códigos todos distintos y
// contiguos: el correlativo nunca salta ni repite.
func TestCrearCotizacion_CorrelativosConcurrentes(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	const n = 25
	codigos := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			orden, err := uc.CrearCotizacion(ctx, "vendedor", requestBasica())
			if err == nil {
				codigos[i] = orden.Codigo
			}
		}(i)
	}
	wg.Wait()

	numeros := make([]int, 0, n)
	vistos := make(map[string]bool, n)
	for _, codigo := range codigos {
		require.NotEmpty(t, codigo, "toda creación debe recibir código")
		assert.Falsef(t, vistos[codigo], "código repetido %s", codigo)
		vistos[codigo] = true

		partes := strings.Split(codigo, "-")
		require.Len(t, partes, 3)
		num, err := strconv.Atoi(partes[2])
		require.NoError(t, err)
		numeros = append(numeros, num)
	}
	sort.Ints(numeros)
	for i, num := range numeros {
		assert.Equalf(t, i+1, num, "la secuencia debe ser contigua desde 1 (posición %d)", i)
	}
}

func TestRechazarYCancelar(t *testing.T) {
	uc, s := nuevoUseCase(t)
	ctx := context.Background()

	orden, err := uc.CrearCotizacion(ctx, "vendedor", requestBasica())
	require.NoError(t, err)

	rechazada, err := uc.Rechazar(ctx, "vendedor", orden.ID, "precio alto")
	require.NoError(t, err)
	assert.Equal(t, string(produccion.EstadoRechazada), rechazada.Estado)
	assert.Contains(t, s.acciones(), "COTIZACION_RECHAZADA")

	// Rechazada es terminal: no se cancela ni se convierte después.
	_, err = uc.Cancelar(ctx, "vendedor", orden.ID, "")
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
	_, err = uc.ConvertirAOT(ctx, "vendedor", orden.ID)
	assert.ErrorIs(t, err, domain.ErrTransicionInvalida)
}

func TestBuscarPorCodigo(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	ctx := context.Background()

	orden, err := uc.CrearCotizacion(ctx, "vendedor", requestBasica())
	require.NoError(t, err)
	ot, err := uc.ConvertirAOT(ctx, "vendedor", orden.ID)
	require.NoError(t, err)

	// La orden se localiza por cualquiera de sus tres identificadores.
	for _, ref := range []string{orden.ID, orden.Codigo, ot.OTID} {
		encontrada, err := uc.BuscarPorCodigo(ctx, ref)
		require.NoErrorf(t, err, "búsqueda por %q", ref)
		assert.Equal(t, orden.ID, encontrada.ID)
	}

	_, err = uc.BuscarPorCodigo(ctx, "COT-1999-00000001")
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

// El tiempo de la conversión queda registrado como entrada a producción.
func TestConvertirAOT_MarcaFechaDeAsignacion(t *testing.T) {
	uc, s := nuevoUseCase(t)
	ctx := context.Background()

	orden, err := uc.CrearCotizacion(ctx, "vendedor", requestBasica())
	require.NoError(t, err)

	antes := time.Now()
	_, err = uc.ConvertirAOT(ctx, "vendedor", orden.ID)
	require.NoError(t, err)

	s.mu.Lock()
	guardada := s.ordenes[orden.ID]
	s.mu.Unlock()
	require.NotNil(t, guardada.FechaAsignacionGlobal)
	assert.False(t, guardada.FechaAsignacionGlobal.Before(antes))
}
