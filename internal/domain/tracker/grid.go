package tracker

import "github.com/jhoicas/omnistock-hub/internal/domain/entity"

// Cell es el valor de una celda proyectada. Recorded distingue el cero
// explícito de "nunca registrado": ambos renderizan vacío en la grilla
// histórica, pero el dominio no pierde la diferencia.
type Cell struct {
	Count    int
	Recorded bool
}

// GridRow es la proyección plana de un producto sobre el rango de fechas:
// el contrato que consumen la grilla editable y los exportadores
// (una columna por día, celda vacía cuando no hay registro).
type GridRow struct {
	Product entity.Product
	Cells   []Cell
}

// Project produce una fila densa por producto: una celda por fecha del
// rango, resuelta O(1) contra el índice del store. Debe recomputarse cuando
// cambian el Entry Store o el rango de fechas; nunca se cachea entre syncs.
func Project(s *Store, products []entity.Product, dates []string) []GridRow {
	rows := make([]GridRow, 0, len(products))
	for _, p := range products {
		cells := make([]Cell, len(dates))
		for i, d := range dates {
			if e, ok := s.Get(p.ID, d); ok {
				cells[i] = Cell{Count: e.Count, Recorded: true}
			}
		}
		rows = append(rows, GridRow{Product: p, Cells: cells})
	}
	return rows
}
