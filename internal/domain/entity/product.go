package entity

// Product representa un SKU del catálogo.
// Category es el nombre de la categoría (se compara por igualdad de strings
// contra Category.Name, no es una foreign key: borrar una categoría deja el
// string huérfano en el producto).
type Product struct {
	ID       string
	Code     string // SKU corto, ej. "B06"
	Name     string
	Unit     string // tamaño de empaque descriptivo, ej. "70pc"
	Capacity int    // stock máximo esperado
	Category string
}
