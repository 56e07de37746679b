package ports

import "github.com/jhoicas/omnistock-hub/internal/domain/tracker"

// SheetRenderer materializa la proyección plana de la grilla (una fila por
// producto, una columna por día) en un documento de hoja de cálculo.
type SheetRenderer interface {
	RenderGrid(title string, dates []string, rows []tracker.GridRow) ([]byte, error)
}

// StockReportRow fila del reporte PDF: producto + su conteo más reciente.
type StockReportRow struct {
	Code     string
	Name     string
	Unit     string
	Capacity int
	Latest   int
}

// ReportRenderer materializa el reporte de stock actual en PDF.
type ReportRenderer interface {
	RenderStockReport(title string, rows []StockReportRow) ([]byte, error)
}
