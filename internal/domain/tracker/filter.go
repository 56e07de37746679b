package tracker

import (
	"sort"
	"strings"

	"github.com/jhoicas/omnistock-hub/internal/domain/entity"
)

// Filter son los criterios de visibilidad de la grilla. Los límites de
// stock en nil equivalen a -∞/+∞. El stock filtrable de un producto es su
// conteo más reciente; sin entradas cuenta como 0.
type Filter struct {
	Search   string // substring sobre code O name, sin distinguir mayúsculas
	Category string // igualdad exacta; vacío = todas
	MinStock *int
	MaxStock *int
}

// VisibleProducts deriva el subconjunto visible del catálogo preservando su
// orden. Un producto pasa solo si cumple los tres criterios a la vez.
func (f Filter) VisibleProducts(products []entity.Product, s *Store) []entity.Product {
	needle := strings.ToLower(f.Search)
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Code), needle) &&
			!strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		latest := s.LatestCount(p.ID)
		if f.MinStock != nil && latest < *f.MinStock {
			continue
		}
		if f.MaxStock != nil && latest > *f.MaxStock {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories devuelve el conjunto ordenado de categorías distintas del
// catálogo actual. Nota: se deriva de los productos, no de la lista de
// entidades Category — pueden divergir si una categoría quedó sin productos
// o un producto conserva un string huérfano.
func Categories(products []entity.Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out
}
