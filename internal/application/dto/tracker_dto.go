package dto

// GridQuery parámetros de la vista mensual. Los filtros viajan como query
// params; MinStock/MaxStock vacíos equivalen a sin límite.
type GridQuery struct {
	Month    string `query:"month" validate:"required,len=7"` // YYYY-MM
	Search   string `query:"search"`
	Category string `query:"category"`
	MinStock *int   `query:"min_stock" validate:"omitempty,min=0"`
	MaxStock *int   `query:"max_stock" validate:"omitempty,min=0"`
}

// GridResponse la grilla mensual densa: una fila por producto visible, una
// columna por día del mes.
type GridResponse struct {
	Month      string    `json:"month"`
	Dates      []string  `json:"dates"`
	Categories []string  `json:"categories"` // opciones del filtro: categorías distintas del catálogo
	Rows       []GridRow `json:"rows"`
	Dirty      bool      `json:"dirty"`
}

// GridRow fila de la grilla. Cells va alineada con Dates: nil = celda sin
// registrar, puntero a 0 = cero explícito registrado.
type GridRow struct {
	Product ProductResponse `json:"product"`
	Latest  int             `json:"latest_count"`
	Cells   []*int          `json:"cells"`
}

// UpsertEntryRequest edición de una celda (o alta manual rápida).
// Count es texto libre: lo no numérico coerciona a 0, nunca se rechaza.
type UpsertEntryRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Date      string `json:"date" validate:"required,len=10"` // YYYY-MM-DD
	Count     string `json:"count"`
}

// EntryResponse entrada registrada tras un upsert.
type EntryResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Date      string `json:"date"`
	Count     int    `json:"count"`
	UserID    string `json:"user_id"`
	Dirty     bool   `json:"dirty"`
}

// SyncResponse resultado de la reconciliación con el remote store.
type SyncResponse struct {
	Entries  int  `json:"entries"`  // tamaño del conjunto autoritativo instalado
	Replayed int  `json:"replayed"` // ediciones encoladas durante el sync y re-aplicadas
	Dirty    bool `json:"dirty"`
}

// ScanRequest imagen de una planilla física para extracción asistida.
type ScanRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
	MimeType    string `json:"mime_type"`
}

// ScanResponse resultado agregado del lote: no se reportan ítems
// individuales, solo cuántos se fusionaron y cuántos se descartaron.
type ScanResponse struct {
	Merged  int  `json:"merged"`
	Skipped int  `json:"skipped"`
	Dirty   bool `json:"dirty"`
}
