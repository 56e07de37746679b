package export

import (
	"fmt"
	"strconv"
	"time"

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

	"github.com/jhoicas/omnistock-hub/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// Verificar en tiempo de compilación que implementa el puerto.
var _ ports.ReportRenderer = (*PDFReport)(nil)

// PDFReport genera el reporte de stock actual usando Maroto v2.
type PDFReport struct{}

// NewPDFReport construye el generador.
func NewPDFReport() *PDFReport { return &PDFReport{} }

// RenderStockReport genera el PDF: una fila por producto con su conteo más
// reciente; los productos por debajo del 20% de su capacidad van en rojo.
func (g *PDFReport) RenderStockReport(title string, rows []ports.StockReportRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(productRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(rows)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string) core.Row {
	fecha := time.Now().Format("02/01/2006")
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Producto", 5, align.Left),
		h("Empaque", 2, align.Center),
		h("Capacidad", 1, align.Right),
		h("Stock", 2, align.Right),
	)
}

func productRow(r ports.StockReportRow) core.Row {
	stockColor := colorGray
	if r.Capacity > 0 && r.Latest*5 < r.Capacity { // bajo el 20%
		stockColor = colorAlert
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(r.Code, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(5).Add(text.New(r.Name, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(r.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(1).Add(text.New(strconv.Itoa(r.Capacity), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(2).Add(text.New(strconv.Itoa(r.Latest), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right,
			Top: 1, Right: 1, Color: stockColor,
		})),
	)
}

func footerRow(total int) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d productos listados. Stock en rojo: por debajo del 20%% de su capacidad.", total),
			props.Text{Size: 7, Color: colorGray, Top: 2}),
	))
}
