package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/facturacion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/ordenes"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/planta"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

// Ensure TxRunner implements the application tx ports.
var _ ordenes.TxRunner = (*TxRunner)(nil)
var _ planta.TxRunner = (*TxRunner)(nil)
var _ facturacion.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunComercial inicia una transacción con los repos del flujo comercial: el
// correlativo COT/OT solo se consume si la orden se confirma con él.
func (r *TxRunner) RunComercial(ctx context.Context, fn func(
	ordenRepo repository.OrdenRepository,
	faseRepo repository.FaseRepository,
	correlativoRepo repository.CorrelativoRepository,
	auditoriaRepo repository.AuditoriaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrdenRepository(tx), NewFaseRepository(tx), NewCorrelativoRepository(tx), NewAuditoriaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run inicia una transacción con los repos del flujo de planta atados a ella
// y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ordenRepo repository.OrdenRepository,
	faseRepo repository.FaseRepository,
	auditoriaRepo repository.AuditoriaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrdenRepository(tx), NewFaseRepository(tx), NewAuditoriaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunFacturacion inicia una transacción con los repos de facturación: el
// correlativo FAC/BOL solo se consume si el comprobante y el flag de la orden
// se confirman con él.
func (r *TxRunner) RunFacturacion(ctx context.Context, fn func(
	ordenRepo repository.OrdenRepository,
	facturaRepo repository.FacturaRepository,
	correlativoRepo repository.CorrelativoRepository,
	auditoriaRepo repository.AuditoriaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrdenRepository(tx), NewFacturaRepository(tx), NewCorrelativoRepository(tx), NewAuditoriaRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
