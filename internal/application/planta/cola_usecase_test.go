package planta_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/planta"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
)

// sembrarOT deja una orden de trabajo esperando en la cola del departamento,
// con su fase pendiente y sin dueño.
func sembrarOT(s *memStore, id string, dep produccion.Departamento) *entity.Orden {
	o := &entity.Orden{
		ID:     id,
		Codigo: "COT-2026-00000001",
		OTID:   "OT-2026-00000001",
		Estado: dep.EstadoCola(),
	}
	s.agregarOrden(o)
	s.crearFasePendiente(dep, id)
	return o
}

func nuevaColaUC(s *memStore) *planta.ColaUseCase {
	return planta.NewColaUseCase(txRunnerFake{s}, ordenRepoFake{s}, faseRepoFake{s})
}

// Veinte operadores reclaman la misma orden a la vez: exactamente uno la
// obtiene y el resto recibe ErrTareaYaTomada. La orden queda en el estado de
// trabajo del departamento con el ganador como dueño.
func TestReclamar_ReclamoConcurrente(t *testing.T) {
	s := newMemStore()
	sembrarOT(s, "ord-1", produccion.DepartamentoPreprensa)
	uc := nuevaColaUC(s)

	const operadores = 20
	errs := make([]error, operadores)
	var wg sync.WaitGroup
	for i := 0; i < operadores; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Reclamar(context.Background(), produccion.DepartamentoPreprensa,
				"operador", fmt.Sprintf("trab-%d", i), "ord-1")
		}(i)
	}
	wg.Wait()

	ganadores := 0
	for i, err := range errs {
		if err == nil {
			ganadores++
			continue
		}
		// Los perdedores pierden en el reclamo atómico o, si llegan después
		// del cambio de estado, en la validación de cola.
		assert.Truef(t, errors.Is(err, domain.ErrTareaYaTomada) || errors.Is(err, domain.ErrConflictoEstado),
			"trab-%d: error inesperado %v", i, err)
	}
	assert.Equal(t, 1, ganadores, "exactamente un operador gana el reclamo")

	fase := s.fase(produccion.DepartamentoPreprensa, "ord-1")
	require.NotNil(t, fase.AsignadoID, "la fase queda con dueño")
	assert.Equal(t, produccion.FaseEnDiseno, fase.Estado)
	assert.Equal(t, produccion.EstadoEnDiseno, s.orden("ord-1").Estado)
}

func TestReclamar_SegundoReclamoFalla(t *testing.T) {
	s := newMemStore()
	sembrarOT(s, "ord-1", produccion.DepartamentoPrensa)
	uc := nuevaColaUC(s)
	ctx := context.Background()

	fase, err := uc.Reclamar(ctx, produccion.DepartamentoPrensa, "op", "trab-1", "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "trab-1", fase.AsignadoID)

	// Reclamada, la orden ya no está en la cola de prensa.
	_, err = uc.Reclamar(ctx, produccion.DepartamentoPrensa, "op", "trab-2", "ord-1")
	assert.ErrorIs(t, err, domain.ErrConflictoEstado)
}

func TestReclamar_FueraDeCola(t *testing.T) {
	s := newMemStore()
	s.agregarOrden(&entity.Orden{ID: "ord-1", Estado: produccion.EstadoEnNegociacion})
	uc := nuevaColaUC(s)

	_, err := uc.Reclamar(context.Background(), produccion.DepartamentoPreprensa, "op", "trab-1", "ord-1")
	assert.ErrorIs(t, err, domain.ErrConflictoEstado, "una cotización sin convertir no se reclama")

	_, err = uc.Reclamar(context.Background(), produccion.DepartamentoPreprensa, "op", "trab-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)

	_, err = uc.Reclamar(context.Background(), "ventas", "op", "trab-1", "ord-1")
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida, "departamento desconocido")
}

func TestListarCola(t *testing.T) {
	s := newMemStore()
	sembrarOT(s, "ord-1", produccion.DepartamentoPreprensa)
	sembrarOT(s, "ord-2", produccion.DepartamentoPreprensa)
	uc := nuevaColaUC(s)
	ctx := context.Background()

	cola, err := uc.ListarCola(ctx, produccion.DepartamentoPreprensa)
	require.NoError(t, err)
	assert.Len(t, cola, 2)

	// Al reclamarse, la orden sale de la cola compartida.
	_, err = uc.Reclamar(ctx, produccion.DepartamentoPreprensa, "op", "trab-1", "ord-1")
	require.NoError(t, err)

	cola, err = uc.ListarCola(ctx, produccion.DepartamentoPreprensa)
	require.NoError(t, err)
	require.Len(t, cola, 1)
	assert.Equal(t, "ord-2", cola[0].ID)
}

func TestObtenerFase(t *testing.T) {
	s := newMemStore()
	sembrarOT(s, "ord-1", produccion.DepartamentoPostprensa)
	uc := nuevaColaUC(s)

	fase, err := uc.ObtenerFase(context.Background(), produccion.DepartamentoPostprensa, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, string(produccion.FasePendiente), fase.Estado)

	_, err = uc.ObtenerFase(context.Background(), produccion.DepartamentoPostprensa, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}
