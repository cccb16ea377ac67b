// Package pdf implementa la representación gráfica del comprobante de venta
// (Factura o Boleta electrónica, SUNAT).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Imprenta + RUC  │  Tipo + N° comprobante + Fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ADQUIRIENTE: Razón social + RUC/DNI + dirección             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Subtotal               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Op. gravada / IGV 18% / IMPORTE TOTAL              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: OT de origen + leyenda                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/facturacion"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
)

// Datos fijos del emisor.
const (
	emisorNombre    = "Impresos S.R.L."
	emisorRUC       = "RUC: 20481234567"
	emisorDireccion = "Av. España 1234, Trujillo, La Libertad"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 140, Green: 30, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa facturacion.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

var _ facturacion.PDFGenerator = (*MarotoPDFGenerator)(nil)

// GenerarPDF genera el PDF del comprobante y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerarPDF(_ context.Context, factura *entity.Factura, orden *entity.Orden) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(factura.Tipo+" "+factura.Numero, true).
		WithAuthor(emisorNombre, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(factura))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(adquirienteRow(factura))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(orden.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(factura))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(orden))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor (izq) y tipo + número + fecha (der).
func headerRow(factura *entity.Factura) core.Row {
	fecha := factura.FechaEmision.Format("02/01/2006")

	return row.New(20).Add(
		col.New(7).Add(
			text.New(emisorNombre, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(emisorRUC, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
			text.New(emisorDireccion, props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(factura.Tipo+" ELECTRÓNICA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(factura.Numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// adquirienteRow: snapshot del cliente al momento de la emisión.
func adquirienteRow(factura *entity.Factura) core.Row {
	docLabel := "RUC"
	if factura.Tipo == entity.DocumentoBoleta {
		docLabel = "DNI"
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("ADQUIRIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(factura.ClienteNombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s: %s   |   %s",
				docLabel, factura.ClienteDoc,
				nonEmpty(factura.ClienteDireccion, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ítems.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("P. Unitario", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableDetailRows: una fila por ítem de la orden.
func tableDetailRows(items []entity.OrdenItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		descripcion := it.Producto
		if it.Especificaciones != "" {
			descripcion += " (" + it.Especificaciones + ")"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Cantidad),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				descripcion,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"S/ "+it.PrecioUnitario.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"S/ "+it.Subtotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: desglose IGV alineado a la derecha. Siempre subtotal + IGV = total.
func totalsRow(factura *entity.Factura) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(
			label("Op. gravada:"),
			label("IGV (18%):"),
			grandLabel("IMPORTE TOTAL:"),
		),
		col.New(4).Add(
			value("S/ "+factura.Subtotal.StringFixed(2)),
			value("S/ "+factura.IGV.StringFixed(2)),
			grandValue("S/ "+factura.Total.StringFixed(2)),
		),
		col.New(1),
	)
}

// footerRow: referencia a la OT de origen + leyenda.
func footerRow(orden *entity.Orden) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Orden de trabajo: %s (%s)", orden.OTID, orden.Codigo), props.Text{
				Size: 8, Color: colorGray, Top: 2,
			}),
			text.New("Representación impresa del comprobante electrónico. Conserve este documento como sustento fiscal.", props.Text{
				Size: 6.5, Color: colorGray, Top: 8,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
