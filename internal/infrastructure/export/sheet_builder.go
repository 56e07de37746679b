// Package export materializa las proyecciones del tracker en documentos
// descargables: una hoja de cálculo XML (SpreadsheetML, la abre Excel
// directamente) y un reporte PDF de stock actual.
package export

import (
	"strconv"

	"github.com/beevik/etree"

	"github.com/jhoicas/omnistock-hub/internal/application/ports"
	"github.com/jhoicas/omnistock-hub/internal/domain/tracker"
)

const (
	nsSpreadsheet = "urn:schemas-microsoft-com:office:spreadsheet"
	nsOffice      = "urn:schemas-microsoft-com:office:office"
	nsExcel       = "urn:schemas-microsoft-com:office:excel"
)

// Verificar en tiempo de compilación que implementa el puerto.
var _ ports.SheetRenderer = (*SheetBuilder)(nil)

// SheetBuilder construye el libro SpreadsheetML de la grilla mensual.
type SheetBuilder struct{}

// NewSheetBuilder construye el renderizador.
func NewSheetBuilder() *SheetBuilder { return &SheetBuilder{} }

// RenderGrid produce el libro con una fila por producto y una columna por
// día. Las celdas sin registrar quedan vacías; el cero explícito se escribe
// como 0 (la distinción sobrevive al export).
func (b *SheetBuilder) RenderGrid(title string, dates []string, rows []tracker.GridRow) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	workbook := doc.CreateElement("Workbook")
	workbook.CreateAttr("xmlns", nsSpreadsheet)
	workbook.CreateAttr("xmlns:o", nsOffice)
	workbook.CreateAttr("xmlns:x", nsExcel)
	workbook.CreateAttr("xmlns:ss", nsSpreadsheet)

	styles := workbook.CreateElement("Styles")
	header := styles.CreateElement("Style")
	header.CreateAttr("ss:ID", "header")
	font := header.CreateElement("Font")
	font.CreateAttr("ss:Bold", "1")

	worksheet := workbook.CreateElement("Worksheet")
	worksheet.CreateAttr("ss:Name", sheetName(title))
	table := worksheet.CreateElement("Table")

	// Cabecera: Código | Producto | Categoría | un día por columna
	head := table.CreateElement("Row")
	for _, label := range append([]string{"Código", "Producto", "Categoría"}, dates...) {
		cell := head.CreateElement("Cell")
		cell.CreateAttr("ss:StyleID", "header")
		addData(cell, "String", label)
	}

	for _, row := range rows {
		tr := table.CreateElement("Row")
		addStringCell(tr, row.Product.Code)
		addStringCell(tr, row.Product.Name)
		addStringCell(tr, row.Product.Category)
		for _, cell := range row.Cells {
			td := tr.CreateElement("Cell")
			if cell.Recorded {
				addData(td, "Number", strconv.Itoa(cell.Count))
			}
			// sin registrar: celda presente pero sin Data, Excel la muestra vacía
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func addStringCell(row *etree.Element, value string) {
	addData(row.CreateElement("Cell"), "String", value)
}

func addData(cell *etree.Element, typ, value string) {
	data := cell.CreateElement("Data")
	data.CreateAttr("ss:Type", typ)
	data.SetText(value)
}

// sheetName recorta el título a los 31 caracteres que permite Excel.
func sheetName(title string) string {
	if len(title) > 31 {
		return title[:31]
	}
	return title
}
