package export

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/omnistock-hub/internal/application/ports"
	"github.com/jhoicas/omnistock-hub/internal/domain/entity"
	"github.com/jhoicas/omnistock-hub/internal/domain/tracker"
)

func TestSheetBuilder_CeldasVaciasVsCeroExplicito(t *testing.T) {
	// Caso 1: la celda sin registrar queda sin Data; el 0 registrado se
	// escribe como número. La distinción sobrevive al documento.
	rows := []tracker.GridRow{
		{
			Product: entity.Product{Code: "B06", Name: "Harina", Category: "Secos"},
			Cells: []tracker.Cell{
				{Count: 15, Recorded: true},
				{},
				{Count: 0, Recorded: true},
			},
		},
	}

	raw, err := NewSheetBuilder().RenderGrid("Inventario 2025-03", []string{"2025-03-01", "2025-03-02", "2025-03-03"}, rows)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(raw))

	tabla := doc.FindElement("//Worksheet/Table")
	require.NotNil(t, tabla)
	filas := tabla.FindElements("Row")
	require.Len(t, filas, 2, "cabecera + una fila de producto")

	celdas := filas[1].FindElements("Cell")
	require.Len(t, celdas, 6, "código, producto, categoría y tres días")

	assert.Equal(t, "15", celdas[3].FindElement("Data").Text())
	assert.Nil(t, celdas[4].FindElement("Data"), "sin registrar = celda vacía")
	assert.Equal(t, "0", celdas[5].FindElement("Data").Text(), "el cero explícito sí se escribe")
}

func TestSheetBuilder_CabeceraConUnDiaPorColumna(t *testing.T) {
	// Caso 2: la cabecera lleva las tres columnas fijas más cada fecha.
	raw, err := NewSheetBuilder().RenderGrid("Inventario 2025-02", []string{"2025-02-01", "2025-02-02"}, nil)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(raw))

	cabecera := doc.FindElement("//Worksheet/Table/Row")
	require.NotNil(t, cabecera)
	celdas := cabecera.FindElements("Cell")
	require.Len(t, celdas, 5)
	assert.Equal(t, "Código", celdas[0].FindElement("Data").Text())
	assert.Equal(t, "2025-02-02", celdas[4].FindElement("Data").Text())
}

func TestPDFReport_GeneraDocumento(t *testing.T) {
	// Caso 3: humo del PDF: bytes no vacíos con cabecera %PDF.
	rows := []ports.StockReportRow{
		{Code: "B06", Name: "Harina de Trigo", Unit: "70pc", Capacity: 100, Latest: 12},
		{Code: "A01", Name: "Aceite", Unit: "1lt", Capacity: 50, Latest: 45},
	}

	raw, err := NewPDFReport().RenderStockReport("Reporte de Inventario 2025-03", rows)
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.Equal(t, "%PDF", string(raw[:4]))
}
