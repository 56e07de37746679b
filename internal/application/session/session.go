// Package session mantiene el contexto explícito de cada login: usuario,
// bearer token del remote store y el estado del tracker (Entry Store, flag
// dirty, generación de sync y cola de ediciones). Nada de esto vive en
// estado global: el objeto se crea en el login, viaja a cada operación que
// lo necesita y se destruye en el logout. El hub no persiste nada entre
// sesiones más allá de lo que el propio token de sesión codifica.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/omnistock-hub/internal/domain"
	"github.com/jhoicas/omnistock-hub/internal/domain/entity"
	"github.com/jhoicas/omnistock-hub/internal/domain/tracker"
)

// queuedEdit edición recibida mientras un sync estaba en vuelo; se
// re-aplica como upsert sobre el estado post-replace para que el replace
// al por mayor no la pierda en silencio.
type queuedEdit struct {
	productID string
	date      string
	rawCount  string
}

// Session contexto de un login activo. El mutex serializa todas las
// transiciones de estado del tracker (el original era single-threaded por
// pestaña; aquí lo garantiza el lock por sesión). Las llamadas de red
// ocurren fuera del lock: las ediciones siguen fluyendo durante un sync.
type Session struct {
	ID           string
	User         entity.User
	BackendToken string
	CreatedAt    time.Time

	mu       sync.Mutex
	store    *tracker.Store
	syncGen  uint64 // generación del sync más reciente iniciado
	inFlight int    // syncs actualmente en vuelo
	queue    []queuedEdit
}

// Upsert aplica una edición al Entry Store. Si hay un sync en vuelo la
// edición además se encola, porque el replace que viene podría no
// incluirla (el push ya partió con un snapshot anterior).
func (s *Session) Upsert(productID, date, rawCount string) entity.InventoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.store.Upsert(productID, date, rawCount, s.User.ID)
	if s.inFlight > 0 {
		s.queue = append(s.queue, queuedEdit{productID: productID, date: date, rawCount: rawCount})
	}
	return e
}

// View ejecuta fn con acceso de lectura serializado al Entry Store.
// fn no debe retener el *Store fuera de la llamada.
func (s *Session) View(fn func(*tracker.Store)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.store)
}

// Dirty indica si hay ediciones sin confirmar por el remote store.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Dirty()
}

// Prime instala el conjunto inicial de entradas tras el login (con la
// normalización de fechas de Replace) sin pasar por el protocolo de sync.
func (s *Session) Prime(entries []entity.InventoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Replace(entries)
}

// BeginSync abre una generación nueva y devuelve el snapshot completo a
// empujar. La generación sirve para descartar respuestas obsoletas si dos
// syncs se superponen: solo la más reciente puede instalar su resultado.
func (s *Session) BeginSync() (gen uint64, snapshot []entity.InventoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncGen++
	s.inFlight++
	return s.syncGen, s.store.Entries()
}

// CompleteSync instala el conjunto autoritativo del servidor si la
// generación sigue siendo la más reciente; si no, descarta el resultado y
// devuelve domain.ErrStaleSync. Tras el replace re-aplica como upserts las
// ediciones encoladas durante el vuelo (el store queda dirty de nuevo si
// había alguna) y devuelve cuántas fueron.
func (s *Session) CompleteSync(gen uint64, entries []entity.InventoryEntry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if gen != s.syncGen {
		if s.inFlight == 0 {
			s.queue = nil
		}
		return 0, domain.ErrStaleSync
	}
	s.store.Replace(entries)
	replayed := len(s.queue)
	for _, q := range s.queue {
		s.store.Upsert(q.productID, q.date, q.rawCount, s.User.ID)
	}
	s.queue = nil
	return replayed, nil
}

// FailSync cierra una generación fallida sin tocar el Entry Store ni el
// flag dirty: la reconciliación es todo-o-nada. Las ediciones encoladas ya
// viven en el store, así que al no quedar syncs en vuelo la cola se vacía.
func (s *Session) FailSync(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if s.inFlight == 0 {
		s.queue = nil
	}
}

// Registry guarda las sesiones vivas en memoria, indexadas por el
// session_id que viaja en el JWT local.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry crea un registro vacío.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create abre una sesión para el usuario autenticado con su token del
// remote store y un Entry Store vacío.
func (r *Registry) Create(user entity.User, backendToken string) *Session {
	s := &Session{
		ID:           uuid.New().String(),
		User:         user,
		BackendToken: backendToken,
		CreatedAt:    time.Now(),
		store:        tracker.NewStore(),
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get devuelve la sesión si sigue viva.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Delete destruye la sesión (logout). Idempotente.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}
