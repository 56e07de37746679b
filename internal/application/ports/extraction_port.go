package ports

import "context"

// ExtractionRow tripleta producida por el servicio de extracción por
// imagen. ProductCode se resuelve después contra el catálogo; una fila con
// código desconocido se descarta en silencio durante la fusión.
type ExtractionRow struct {
	ProductCode string
	Date        string // normalizada a YYYY-MM-DD por la fusión
	Count       int
}

// ExtractionService puerto del servicio externo que lee una planilla
// fotografiada y devuelve tripletas (código, fecha, conteo). El adaptador
// descarta defensivamente los ítems malformados en lugar de fallar el lote;
// un fallo del servicio completo sí es terminal (no se fusiona nada).
type ExtractionService interface {
	ExtractInventory(ctx context.Context, imageBase64, mimeType string) ([]ExtractionRow, error)
}
