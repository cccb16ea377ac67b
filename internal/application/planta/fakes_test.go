package planta_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/planta"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

// memStore es el almacén en memoria compartido por los repos fake. Cada
// operación toma el lock por separado, igual que statements SQL individuales
// bajo read committed: así el reclamo concurrente se decide en Reclamar y no
// por una serialización artificial del test.
type memStore struct {
	mu          sync.Mutex
	ordenes     map[string]*entity.Orden
	fases       map[produccion.Departamento]map[string]*entity.Fase
	incidencias []*entity.Incidencia
	archivos    []*entity.Archivo
	auditoria   []*entity.Auditoria
}

func newMemStore() *memStore {
	return &memStore{
		ordenes: make(map[string]*entity.Orden),
		fases:   make(map[produccion.Departamento]map[string]*entity.Fase),
	}
}

func (s *memStore) agregarOrden(o *entity.Orden) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ordenes[o.ID] = o
}

func (s *memStore) orden(id string) *entity.Orden {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ordenes[id]
}

func (s *memStore) fase(dep produccion.Departamento, ordenID string) *entity.Fase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fases[dep][ordenID]
}

func (s *memStore) crearFasePendiente(dep produccion.Departamento, ordenID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fases[dep] == nil {
		s.fases[dep] = make(map[string]*entity.Fase)
	}
	s.fases[dep][ordenID] = &entity.Fase{
		OrdenID:   ordenID,
		Estado:    produccion.FasePendiente,
		Checklist: dep.ChecklistVacio(),
	}
}

func (s *memStore) acciones() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.auditoria))
	for _, a := range s.auditoria {
		out = append(out, a.Accion)
	}
	return out
}

// ── Repos fake ────────────────────────────────────────────────────────────────

type ordenRepoFake struct{ s *memStore }
type faseRepoFake struct{ s *memStore }
type incidenciaRepoFake struct{ s *memStore }
type archivoRepoFake struct{ s *memStore }
type auditoriaRepoFake struct{ s *memStore }

var (
	_ repository.OrdenRepository      = ordenRepoFake{}
	_ repository.FaseRepository       = faseRepoFake{}
	_ repository.IncidenciaRepository = incidenciaRepoFake{}
	_ repository.ArchivoRepository    = archivoRepoFake{}
	_ repository.AuditoriaRepository  = auditoriaRepoFake{}
)

type txRunnerFake struct{ s *memStore }

var _ planta.TxRunner = txRunnerFake{}

func (t txRunnerFake) Run(ctx context.Context, fn func(
	repository.OrdenRepository,
	repository.FaseRepository,
	repository.AuditoriaRepository,
) error) error {
	return fn(ordenRepoFake{t.s}, faseRepoFake{t.s}, auditoriaRepoFake{t.s})
}

// almacenFake guarda en memoria y devuelve una URL sintética.
type almacenFake struct{}

var _ planta.Almacen = almacenFake{}

func (almacenFake) Guardar(ctx context.Context, ordenID, nombre string, contenido []byte) (string, error) {
	return fmt.Sprintf("mem://%s/%s", ordenID, nombre), nil
}

// ── OrdenRepository ───────────────────────────────────────────────────────────

func (r ordenRepoFake) Crear(ctx context.Context, o *entity.Orden) error {
	r.s.agregarOrden(o)
	return nil
}

func (r ordenRepoFake) Actualizar(ctx context.Context, o *entity.Orden) error {
	r.s.agregarOrden(o)
	return nil
}

func (r ordenRepoFake) ObtenerPorID(ctx context.Context, id string) (*entity.Orden, error) {
	return r.s.orden(id), nil
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
		return nil
	}
	r.s.fases[dep][ordenID] = &entity.Fase{
		OrdenID:   ordenID,
		Estado:    produccion.FasePendiente,
		Checklist: dep.ChecklistVacio(),
	}
	return nil
}

func (r faseRepoFake) ObtenerPorOrden(ctx context.Context, dep produccion.Departamento, ordenID string) (*entity.Fase, error) {
	return r.s.fase(dep, ordenID), nil
}

// Reclamar replica el upsert condicional: gana exactamente uno.
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

// ── IncidenciaRepository ──────────────────────────────────────────────────────

func (r incidenciaRepoFake) Crear(ctx context.Context, i *entity.Incidencia) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.incidencias = append(r.s.incidencias, i)
	return nil
}

func (r incidenciaRepoFake) ListarPorOrden(ctx context.Context, ordenID string) ([]*entity.Incidencia, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Incidencia
	for _, i := range r.s.incidencias {
		if i.OrdenID == ordenID {
			list = append(list, i)
		}
	}
	return list, nil
}

// ── ArchivoRepository ─────────────────────────────────────────────────────────

func (r archivoRepoFake) Crear(ctx context.Context, a *entity.Archivo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.archivos = append(r.s.archivos, a)
	return nil
}

func (r archivoRepoFake) ListarPorOrden(ctx context.Context, ordenID string) ([]*entity.Archivo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Archivo
	for _, a := range r.s.archivos {
		if a.OrdenID == ordenID {
			list = append(list, a)
		}
	}
	return list, nil
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
