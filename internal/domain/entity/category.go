package entity

// Category agrupa productos por nombre. Ciclo de vida independiente de
// Product: el nombre es único por convención, no se fuerza.
type Category struct {
	ID          string
	Name        string
	Description string
}
