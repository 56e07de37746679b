package entity

// InventoryEntry es un conteo de stock de un producto en un día calendario.
// Date se codifica siempre como "YYYY-MM-DD" en hora local, nunca como
// timestamp. Invariante del Entry Store: a lo sumo una entrada por par
// (ProductID, Date), garantizada por la regla de upsert — nunca por índice.
type InventoryEntry struct {
	ID        string
	ProductID string
	Date      string // YYYY-MM-DD
	Count     int    // unidades contadas ese día, nunca negativo
	UserID    string // quien registró el conteo
}
