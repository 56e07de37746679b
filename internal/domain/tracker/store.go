package tracker

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/omnistock-hub/internal/domain/entity"
)

// cellKey identifica la celda lógica (producto, día).
type cellKey struct {
	productID string
	date      string
}

// Store es el Entry Store: la colección en memoria de conteos del período
// cargado y única fuente de verdad para las vistas derivadas.
//
// Invariante: a lo sumo una entrada por (ProductID, Date). Se sostiene
// porque toda mutación pasa por Upsert o Replace; ningún otro componente
// escribe directamente. El índice por clave compuesta da lecturas O(1)
// para la grilla.
//
// Store no es seguro para uso concurrente: el dueño (la sesión) serializa
// el acceso.
type Store struct {
	byCell map[cellKey]entity.InventoryEntry
	order  []cellKey // orden de inserción; un upsert re-mueve la celda al final
	dirty  bool
}

// NewStore crea un Entry Store vacío y limpio.
func NewStore() *Store {
	return &Store{byCell: make(map[cellKey]entity.InventoryEntry)}
}

// CoerceCount convierte el texto libre de una celda a un conteo.
// Entrada vacía, no numérica o negativa coerciona a 0: nunca es un error
// (la UI no rechaza celdas, las registra como cero).
func CoerceCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Upsert elimina la entrada existente para (productID, date) si la hay y
// agrega una nueva con id fresco, el conteo coercionado desde texto libre y
// el usuario que registra. Marca el store como dirty.
func (s *Store) Upsert(productID, date, rawCount, userID string) entity.InventoryEntry {
	e := entity.InventoryEntry{
		ID:        uuid.New().String(), // id local efímero; el sync lo reemplaza por el del servidor
		ProductID: productID,
		Date:      date,
		Count:     CoerceCount(rawCount),
		UserID:    userID,
	}
	key := cellKey{productID: productID, date: date}
	if _, exists := s.byCell[key]; exists {
		s.removeFromOrder(key)
	}
	s.byCell[key] = e
	s.order = append(s.order, key)
	s.dirty = true
	return e
}

// Get devuelve la entrada única de la celda, si fue registrada.
// Un cero explícito regresa (0, true); una celda jamás registrada, (0, false).
func (s *Store) Get(productID, date string) (entity.InventoryEntry, bool) {
	e, ok := s.byCell[cellKey{productID: productID, date: date}]
	return e, ok
}

// Entries devuelve una copia de todas las entradas en orden de inserción.
// Es el snapshot que el coordinador empuja completo al remote store.
func (s *Store) Entries() []entity.InventoryEntry {
	out := make([]entity.InventoryEntry, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byCell[key])
	}
	return out
}

// Len devuelve cuántas celdas registradas hay.
func (s *Store) Len() int { return len(s.byCell) }

// Dirty indica si hay ediciones locales no confirmadas por el remote store.
func (s *Store) Dirty() bool { return s.dirty }

// Replace instala al por mayor el conjunto autoritativo del servidor,
// normalizando la fecha de cada entrada, y limpia el flag dirty. Si el
// servidor trajera duplicados para una misma celda gana el último, la misma
// semántica remove-then-append del upsert.
func (s *Store) Replace(entries []entity.InventoryEntry) {
	s.byCell = make(map[cellKey]entity.InventoryEntry, len(entries))
	s.order = s.order[:0]
	for _, e := range entries {
		e.Date = NormalizeDate(e.Date)
		key := cellKey{productID: e.ProductID, date: e.Date}
		if _, exists := s.byCell[key]; exists {
			s.removeFromOrder(key)
		}
		s.byCell[key] = e
		s.order = append(s.order, key)
	}
	s.dirty = false
}

// LatestCount devuelve el conteo más reciente del producto, usando la fecha
// lexicográficamente mayor como desempate — válido porque las fechas van
// con cero a la izquierda. Sin entradas registradas devuelve 0.
func (s *Store) LatestCount(productID string) int {
	var bestDate string
	var count int
	for key, e := range s.byCell {
		if key.productID != productID {
			continue
		}
		if bestDate == "" || e.Date > bestDate {
			bestDate = e.Date
			count = e.Count
		}
	}
	return count
}

func (s *Store) removeFromOrder(key cellKey) {
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
