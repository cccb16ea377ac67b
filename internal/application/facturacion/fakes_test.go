package facturacion_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/facturacion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/produccion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

// memStore es el almacén en memoria compartido por los repos fake. Cada
// operación es atómica bajo el lock, igual que un statement SQL.
type memStore struct {
	mu           sync.Mutex
	ordenes      map[string]*entity.Orden
	clientes     map[string]*entity.Cliente
	facturas     []*entity.Factura
	correlativos map[string]int64
	auditoria    []*entity.Auditoria
}

func newMemStore() *memStore {
	return &memStore{
		ordenes:      make(map[string]*entity.Orden),
		clientes:     make(map[string]*entity.Cliente),
		correlativos: make(map[string]int64),
	}
}

func (s *memStore) agregarOrden(o *entity.Orden) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ordenes[o.ID] = o
}

func (s *memStore) agregarCliente(c *entity.Cliente) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientes[c.ID] = c
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
type clienteRepoFake struct{ s *memStore }
type facturaRepoFake struct{ s *memStore }
type correlativoRepoFake struct{ s *memStore }
type auditoriaRepoFake struct{ s *memStore }

var (
	_ repository.OrdenRepository       = ordenRepoFake{}
	_ repository.ClienteRepository     = clienteRepoFake{}
	_ repository.FacturaRepository     = facturaRepoFake{}
	_ repository.CorrelativoRepository = correlativoRepoFake{}
	_ repository.AuditoriaRepository   = auditoriaRepoFake{}
)

type txRunnerFake struct{ s *memStore }

var _ facturacion.TxRunner = txRunnerFake{}

func (t txRunnerFake) RunFacturacion(ctx context.Context, fn func(
	repository.OrdenRepository,
	repository.FacturaRepository,
	repository.CorrelativoRepository,
	repository.AuditoriaRepository,
) error) error {
	return fn(ordenRepoFake{t.s}, facturaRepoFake{t.s}, correlativoRepoFake{t.s}, auditoriaRepoFake{t.s})
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
	return nil, nil
}

func (r ordenRepoFake) ListarColaSinAsignar(ctx context.Context, dep produccion.Departamento) ([]*entity.Orden, error) {
	return nil, nil
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
	return false, nil
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

// ── ClienteRepository ─────────────────────────────────────────────────────────

func (r clienteRepoFake) Crear(ctx context.Context, c *entity.Cliente) error {
	r.s.agregarCliente(c)
	return nil
}

func (r clienteRepoFake) Actualizar(ctx context.Context, c *entity.Cliente) error {
	r.s.agregarCliente(c)
	return nil
}

func (r clienteRepoFake) ObtenerPorID(ctx context.Context, id string) (*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.clientes[id], nil
}

func (r clienteRepoFake) Buscar(ctx context.Context, consulta string, limit int) ([]*entity.Cliente, error) {
	return nil, nil
}

// ── FacturaRepository ─────────────────────────────────────────────────────────

// Crear replica el constraint único sobre orden_id: el segundo insert para la
// misma orden falla con ErrYaFacturada, igual que la violación en Postgres.
func (r facturaRepoFake) Crear(ctx context.Context, f *entity.Factura) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existente := range r.s.facturas {
		if existente.OrdenID == f.OrdenID {
			return domain.ErrYaFacturada
		}
	}
	r.s.facturas = append(r.s.facturas, f)
	return nil
}

func (r facturaRepoFake) ObtenerPorOrden(ctx context.Context, ordenID string) (*entity.Factura, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.facturas {
		if f.OrdenID == ordenID {
			return f, nil
		}
	}
	return nil, nil
}

func (r facturaRepoFake) ObtenerPorID(ctx context.Context, id string) (*entity.Factura, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, f := range r.s.facturas {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, nil
}

func (r facturaRepoFake) Listar(ctx context.Context, limit, offset int) ([]*entity.Factura, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Factura, len(r.s.facturas))
	copy(out, r.s.facturas)
	return out, nil
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
