// Package tracker implementa el núcleo del seguimiento diario de inventario:
// el Entry Store con su regla de upsert, la generación de rangos de fechas,
// la proyección de la grilla mensual y el motor de filtros. Todo es estado
// en memoria: la única fuente durable es el remote store.
package tracker

import (
	"fmt"
	"time"
)

// DateLayout es la codificación canónica de un día calendario.
// Siempre componentes locales, nunca un timestamp: evita que el mismo día
// se parta en dos entradas por el corrimiento UTC/local.
const DateLayout = "2006-01-02"

// monthLayout es el formato del selector de mes ("YYYY-MM").
const monthLayout = "2006-01"

// DatesInMonth devuelve los días calendario del mes indicado ("YYYY-MM"),
// ascendentes, uno por día, con cero a la izquierda. Los años bisiestos los
// resuelve time.Date con la normalización del día cero del mes siguiente.
// Función pura: mismo mes, mismas fechas.
func DatesInMonth(yearMonth string) ([]string, error) {
	m, err := time.ParseInLocation(monthLayout, yearMonth, time.Local)
	if err != nil {
		return nil, fmt.Errorf("tracker: mes inválido %q: %w", yearMonth, err)
	}
	// Día 0 del mes siguiente = último día de este mes.
	last := time.Date(m.Year(), m.Month()+1, 0, 0, 0, 0, 0, time.Local).Day()
	dates := make([]string, 0, last)
	for day := 1; day <= last; day++ {
		d := time.Date(m.Year(), m.Month(), day, 0, 0, 0, 0, time.Local)
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// normalizeLayouts: formas en que el remote store ha devuelto fechas.
// El orden importa: primero la canónica (no-op), luego timestamps.
var normalizeLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NormalizeDate re-deriva "YYYY-MM-DD" desde los componentes calendario en
// hora local de cualquier codificación que traiga la fuente, descartando
// hora y offset. Idempotente sobre una fecha ya canónica. Si ninguna forma
// conocida aplica, devuelve el valor sin tocar (el validador de frontera ya
// rechazó los payloads realmente rotos).
func NormalizeDate(raw string) string {
	for _, layout := range normalizeLayouts {
		t, err := time.ParseInLocation(layout, raw, time.Local)
		if err != nil {
			continue
		}
		return t.In(time.Local).Format(DateLayout)
	}
	return raw
}
