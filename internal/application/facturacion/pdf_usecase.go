package facturacion

import (
	"context"
	"fmt"
	"strings"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de un comprobante emitido.
type PDFUseCase struct {
	facturaRepo repository.FacturaRepository
	ordenRepo   repository.OrdenRepository
	generator   PDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(facturaRepo repository.FacturaRepository, ordenRepo repository.OrdenRepository, generator PDFGenerator) *PDFUseCase {
	return &PDFUseCase{facturaRepo: facturaRepo, ordenRepo: ordenRepo, generator: generator}
}

// DescargarPDF recupera el comprobante con su orden y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNoEncontrado    si el comprobante no existe.
func (uc *PDFUseCase) DescargarPDF(ctx context.Context, facturaID string) (pdfBytes []byte, filename string, err error) {
	factura, err := uc.facturaRepo.ObtenerPorID(ctx, facturaID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener comprobante: %w", err)
	}
	if factura == nil {
		return nil, "", domain.ErrNoEncontrado
	}
	orden, err := uc.ordenRepo.ObtenerPorID(ctx, factura.OrdenID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if orden == nil {
		return nil, "", domain.ErrNoEncontrado
	}

	pdfBytes, err = uc.generator.GenerarPDF(ctx, factura, orden)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("%s_%s.pdf", strings.ToLower(factura.Tipo), factura.Numero)
	return pdfBytes, filename, nil
}
