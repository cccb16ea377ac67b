package ordenes_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/ordenes"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

// memStore es el almacén en memoria compartido por los repos fake. Cada
// operación es atómica bajo el lock, igual que un statement SQL; no emula
// rollbacks.
type memStore struct {
	mu           sync.Mutex
	ordenes      map[string]*entity.Orden
	fases        map[produccion.Departamento]map[string]*entity.Fase
	clientes     map[string]*entity.Cliente
	correlativos map[string]int64
	auditoria    []*entity.Auditoria
}

func newMemStore() *memStore {
	return &memStore{
		ordenes:      make(map[string]*entity.Orden),
		fases:        make(map[produccion.Departamento]map[string]*entity.Fase),
		clientes:     make(map[string]*entity.Cliente),
		correlativos: make(map[string]int64),
	}
}

// acciones devuelve las acciones auditadas en orden de registro.
func (s *memStore) acciones() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.auditoria))
	for _, a := range s.auditoria {
		out = append(out, a.Accion)
	}
	return out
}

func (s *memStore) agregarCliente(c *entity.Cliente) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientes[c.ID] = c
}

func (s *memStore) fase(dep produccion.Departamento, ordenID string) *entity.Fase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fases[dep][ordenID]
}

// ── Repos fake ────────────────────────────────────────────────────────────────

type ordenRepoFake struct{ s *memStore }
type faseRepoFake struct{ s *memStore }
type clienteRepoFake struct{ s *memStore }
type correlativoRepoFake struct{ s *memStore }
type auditoriaRepoFake struct{ s *memStore }

var (
	_ repository.OrdenRepository       = ordenRepoFake{}
	_ repository.FaseRepository        = faseRepoFake{}
	_ repository.ClienteRepository     = clienteRepoFake{}
	_ repository.CorrelativoRepository = correlativoRepoFake{}
	_ repository.AuditoriaRepository   = auditoriaRepoFake{}
)

// txRunnerFake entrega los repos fake sin transacción real.
type txRunnerFake struct{ s *memStore }

var _ ordenes.TxRunner = txRunnerFake{}

func (t txRunnerFake) RunComercial(ctx context.Context, fn func(
	repository.OrdenRepository,
	repository.FaseRepository,
	repository.CorrelativoRepository,
	repository.AuditoriaRepository,
) error) error {
	return fn(ordenRepoFake{t.s}, faseRepoFake{t.s}, correlativoRepoFake{t.s}, auditoriaRepoFake{t.s})
}

// ── OrdenRepository ───────────────────────────────────────────────────────────

func (r ordenRepoFake) Crear(ctx context.Context, o *entity.Orden) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.ordenes[o.ID] = o
	return nil
}

func (r ordenRepoFake) Actualizar(ctx context.Context, o *entity.Orden) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.ordenes[o.ID] = o
	return nil
}

func (r ordenRepoFake) ObtenerPorID(ctx context.Context, id string) (*entity.Orden, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.ordenes[id], nil
}

func (r ordenRepoFake) BuscarPorCodigo(ctx context.Context, codigo string) (*entity.Orden, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.ordenes {
		if o.ID == codigo || o.Codigo == codigo || o.OTID == codigo {
			return o, nil
		}
	}
	return nil, nil
}

func (r ordenRepoFake) Listar(ctx context.Context, limit, offset int) ([]*entity.Orden, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Orden, 0, len(r.s.ordenes))
	for _, o := range r.s.ordenes {
		list = append(list, o)
	}
	return list, nil
}

func (r ordenRepoFake) ListarColaSinAsignar(ctx context.Context, dep produccion.Departamento) ([]*entity.Orden, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Orden
	for _, o := range r.s.ordenes {
		if o.Estado != dep.EstadoCola() {
			continue
		}
		if f := r.s.fases[dep][o.ID]; f == nil || f.AsignadoID == nil {
			list = append(list, o)
		}
	}
	return list, nil
}

func (r ordenRepoFake) ActualizarEstado(ctx context.Context, id string, estado produccion.Estado) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.ordenes[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	o.Estado = estado
	return nil
}

func (r ordenRepoFake) ConvertirAOT(ctx context.Context, id, otID string, ahora time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.ordenes[id]
	if !ok || o.Estado != produccion.EstadoEnNegociacion {
		return false, nil
	}
	o.OTID = otID
	o.Estado = produccion.EstadoOrdenCreada
	o.FechaAsignacionGlobal = &ahora
	return true, nil
}

func (r ordenRepoFake) MarcarFacturada(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.ordenes[id]
	if !ok {
		return domain.ErrNoEncontrado
	}
	o.Facturada = true
	return nil
}

// ── FaseRepository ────────────────────────────────────────────────────────────

func (r faseRepoFake) CrearPendiente(ctx context.Context, dep produccion.Departamento, ordenID string, ahora time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fases[dep] == nil {
		r.s.fases[dep] = make(map[string]*entity.Fase)
	}
	if _, ok := r.s.fases[dep][ordenID]; ok {
		return nil // idempotente
	}
	r.s.fases[dep][ordenID] = &entity.Fase{
		OrdenID:   ordenID,
		Estado:    produccion.FasePendiente,
		Checklist: dep.ChecklistVacio(),
	}
	return nil
}

func (r faseRepoFake) ObtenerPorOrden(ctx context.Context, dep produccion.Departamento, ordenID string) (*entity.Fase, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.fases[dep][ordenID], nil
}

func (r faseRepoFake) Reclamar(ctx context.Context, dep produccion.Departamento, ordenID, trabajadorID string, ahora time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.fases[dep] == nil {
		r.s.fases[dep] = make(map[string]*entity.Fase)
	}
	_, sub := dep.EstadoAlReclamar()
	f, ok := r.s.fases[dep][ordenID]
	if !ok {
		r.s.fases[dep][ordenID] = &entity.Fase{
			OrdenID:         ordenID,
			AsignadoID:      &trabajadorID,
			Estado:          sub,
			Checklist:       dep.ChecklistVacio(),
			FechaAsignacion: &ahora,
		}
		return true, nil
	}
	if f.AsignadoID != nil {
		return false, nil
	}
	f.AsignadoID = &trabajadorID
	f.Estado = sub
	f.FechaAsignacion = &ahora
	return true, nil
}

func (r faseRepoFake) Actualizar(ctx context.Context, dep produccion.Departamento, f *entity.Fase) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.fases[dep][f.OrdenID] = f
	return nil
}

// ── ClienteRepository ─────────────────────────────────────────────────────────

func (r clienteRepoFake) Crear(ctx context.Context, c *entity.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clientes[c.ID] = c
	return nil
}

func (r clienteRepoFake) Actualizar(ctx context.Context, c *entity.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clientes[c.ID] = c
	return nil
}

func (r clienteRepoFake) ObtenerPorID(ctx context.Context, id string) (*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.clientes[id], nil
}

func (r clienteRepoFake) Buscar(ctx context.Context, consulta string, limit int) ([]*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Cliente
	for _, c := range r.s.clientes {
		if strings.Contains(c.RazonSocial, consulta) || strings.Contains(c.RucDni, consulta) {
			list = append(list, c)
		}
	}
	return list, nil
}

// ── CorrelativoRepository ─────────────────────────────────────────────────────

func (r correlativoRepoFake) Siguiente(ctx context.Context, tipo string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.correlativos[tipo]++
	return produccion.FormatearCodigo(tipo, time.Now().Year(), r.s.correlativos[tipo]), nil
}

// ── AuditoriaRepository ───────────────────────────────────────────────────────

func (r auditoriaRepoFake) Registrar(ctx context.Context, a *entity.Auditoria) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.auditoria = append(r.s.auditoria, a)
	return nil
}

func (r auditoriaRepoFake) ListarPorReferencia(ctx context.Context, referencias []string) ([]*entity.Auditoria, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Auditoria
	for _, a := range r.s.auditoria {
		for _, ref := range referencias {
			if strings.Contains(a.Detalle, ref) {
				list = append(list, a)
				break
			}
		}
	}
	return list, nil
}
